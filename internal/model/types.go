package model

import "time"

type CoffeeMode string

const (
	ModeBrand CoffeeMode = "BRAND"
	ModeHome  CoffeeMode = "HOME"
)

type SleepDifficulty string

const (
	SleepEasy   SleepDifficulty = "Easy"
	SleepNormal SleepDifficulty = "Normal"
	SleepHard   SleepDifficulty = "Hard"
)

type FreshnessState string

const (
	FreshnessAging FreshnessState = "AGING"
	FreshnessPeak  FreshnessState = "PEAK"
	FreshnessStale FreshnessState = "STALE"
)

// IntakeLog is one recorded cup, bought or home-brewed.
type IntakeLog struct {
	ID         string
	Name       string
	CaffeineMg float64
	Price      float64
	Mode       CoffeeMode
	BrandID    string
	BeanID     string
	DoseGrams  *float64
	Size       string
	Milk       string
	Ice        string
	Notes      string
	LoggedAt   time.Time
}

// Bean is one purchased bag of beans in the warehouse.
type Bean struct {
	ID             string
	Name           string
	Origin         string
	RoastDate      string
	DateOpened     string
	TotalWeightG   float64
	CurrentWeightG float64
	Price          float64
	FlavorProfile  []string
	IsArchived     bool
	HasBeenOpened  bool
	ImageRef       string
}

// UserProfile holds the decay-model inputs plus cosmetic identity fields.
type UserProfile struct {
	Name            string          `json:"name"`
	Avatar          string          `json:"avatar"`
	DailyLimitMg    float64         `json:"daily_limit_mg"`
	PreferredDrink  string          `json:"preferred_drink"`
	WeightKg        float64         `json:"weight_kg"`
	HeightCm        float64         `json:"height_cm"`
	SleepDifficulty SleepDifficulty `json:"sleep_difficulty"`
}

// WalletStats holds the cost-engine inputs.
type WalletStats struct {
	MonthlyBudget float64  `json:"monthly_budget"`
	SavingsGoal   string   `json:"savings_goal"`
	GoalPrice     float64  `json:"goal_price"`
	CafeBenchmark *float64 `json:"cafe_benchmark,omitempty"`
}

// Brand is a café chain with a fixed best-seller menu.
type Brand struct {
	ID          string
	Name        string
	Color       string
	BestSellers []BestSeller
}

type BestSeller struct {
	Name         string
	BaseCaffeine float64
	BasePrice    float64
}

// HomePreset is a self-brew drink template.
type HomePreset struct {
	ID           string
	Name         string
	Description  string
	CaffeineMg   float64
	ExtraCost    float64
	DefaultDoseG float64
}
