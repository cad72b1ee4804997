package balancing

// Config carries the tunable values of the game loop. It is loaded once at
// startup and treated as immutable afterwards.
type Config struct {
	BatchSize              int `yaml:"batch_size"`
	HiringCost             int `yaml:"hiring_cost"`
	BaseReward             int `yaml:"base_reward"`
	PlayerLevelPerContract int `yaml:"player_level_per_contract"`
	StatGainPerLevel       int `yaml:"stat_gain_per_level"`
	MainStatAllocation     int `yaml:"main_stat_allocation"`
	RandomStatAllocation   int `yaml:"random_stat_allocation"`
	RollDelayMs            int `yaml:"roll_delay_ms"`
	MaxRollValue           int `yaml:"max_roll_value"`
}

// Default returns the compiled-in balancing values used when no balancing
// file is supplied.
func Default() Config {
	return Config{
		BatchSize:              6,
		HiringCost:             50,
		BaseReward:             200,
		PlayerLevelPerContract: 1,
		StatGainPerLevel:       1,
		MainStatAllocation:     6,
		RandomStatAllocation:   4,
		RollDelayMs:            400,
		MaxRollValue:           100,
	}
}
