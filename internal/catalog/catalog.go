// Package catalog holds the fixed tables of the game: the task catalog with its
// coin rewards and radar radii, and the curse table funded by dice rolls.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Category groups tasks that pay the same reward
type Category string

const (
	CategoryRelative  Category = "relative"
	CategoryRadar     Category = "radar"
	CategoryPhotos    Category = "photos"
	CategoryOddball   Category = "oddball"
	CategoryPrecision Category = "precision"
)

// CategoryCoins is the reward paid when a task of the category is confirmed
var CategoryCoins = map[Category]int{
	CategoryRelative:  40,
	CategoryRadar:     30,
	CategoryPhotos:    15,
	CategoryOddball:   10,
	CategoryPrecision: 10,
}

// Task describes one catalog entry
type Task struct {
	Key      string
	Name     string
	Category Category

	// RadiusMeters is only set for radar tasks
	RadiusMeters float64
}

// Coins returns the reward for confirming the task
func (t Task) Coins() int {
	return CategoryCoins[t.Category]
}

// IsRadar reports whether the task resolves from GPS proximity
func (t Task) IsRadar() bool {
	return t.Category == CategoryRadar
}

var tasks = map[string]Task{}

func register(key, name string, category Category, radius float64) {
	tasks[key] = Task{Key: key, Name: name, Category: category, RadiusMeters: radius}
}

func init() {
	register("relative1", "Relative 1", CategoryRelative, 0)
	register("relative2", "Relative 2", CategoryRelative, 0)
	register("radar5", "Radar 5m", CategoryRadar, 5)
	register("radar10", "Radar 10m", CategoryRadar, 10)
	register("radar25", "Radar 25m", CategoryRadar, 25)
	register("radar50", "Radar 50m", CategoryRadar, 50)
	register("radar100", "Radar 100m", CategoryRadar, 100)
	register("radar200", "Radar 200m", CategoryRadar, 200)
	register("radar500", "Radar 500m", CategoryRadar, 500)
	register("radar1000", "Radar 1km", CategoryRadar, 1000)
	register("radar2000", "Radar 2km", CategoryRadar, 2000)
	register("radar5000", "Radar 5km", CategoryRadar, 5000)
	register("photos1", "Photos 1", CategoryPhotos, 0)
	register("photos2", "Photos 2", CategoryPhotos, 0)
	register("oddball1", "Oddball 1", CategoryOddball, 0)
	register("oddball2", "Oddball 2", CategoryOddball, 0)
	register("precision1", "Precision 1", CategoryPrecision, 0)
	register("precision2", "Precision 2", CategoryPrecision, 0)
}

// LookupTask returns the catalog entry for key
func LookupTask(key string) (Task, bool) {
	t, ok := tasks[key]
	return t, ok
}

// DiceCost is the price in coins of a single die
const DiceCost = 50

// MaxCurse is the highest curse index; larger dice sums collapse onto it
const MaxCurse = 24

// CurseForSum maps a dice sum onto a curse index
func CurseForSum(sum int) int {
	if sum > MaxCurse {
		return MaxCurse
	}
	return sum
}

// ParseCurseKey reads a curse index written as "7" or as a key like "curse07"
func ParseCurseKey(key string) (int, error) {
	digits := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(key)), "curse")
	index, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid curse key %q", key)
	}
	return index, nil
}

// CurseName is the display name of a curse index
func CurseName(index int) string {
	return fmt.Sprintf("Curse %02d", index)
}

// MaxAffordableDice is how many dice a balance pays for
func MaxAffordableDice(coins int) int {
	if coins <= 0 {
		return 0
	}
	return coins / DiceCost
}
