package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default machining settings applied to new jobs
	DefaultToolDiameter float64 `json:"default_tool_diameter"`
	DefaultStepOver     float64 `json:"default_step_over"`
	DefaultStepDown     float64 `json:"default_step_down"`
	DefaultFeedRate     float64 `json:"default_feed_rate"`
	DefaultPlungeRate   float64 `json:"default_plunge_rate"`
	DefaultSpindleSpeed float64 `json:"default_spindle_speed"`
	DefaultSafeZ        float64 `json:"default_safe_z"`
	DefaultCutDepth     float64 `json:"default_cut_depth"`
	DefaultStrategy     string  `json:"default_strategy"`
	DefaultGCodeProfile string  `json:"default_gcode_profile"`

	// Application preferences
	RecentJobs []string `json:"recent_jobs"`
	Theme      string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultCamConfig().
func DefaultAppConfig() AppConfig {
	defaults := DefaultCamConfig()
	return AppConfig{
		DefaultToolDiameter: defaults.ToolDiameter,
		DefaultStepOver:     defaults.StepOver,
		DefaultStepDown:     defaults.StepDown,
		DefaultFeedRate:     defaults.FeedRate,
		DefaultPlungeRate:   defaults.PlungeRate,
		DefaultSpindleSpeed: defaults.SpindleSpeed,
		DefaultSafeZ:        defaults.SafeZ,
		DefaultCutDepth:     defaults.CutDepth,
		DefaultStrategy:     defaults.Strategy,
		DefaultGCodeProfile: defaults.GCodeProfile,
		RecentJobs:          []string{},
		Theme:               "system",
	}
}

// ApplyToConfig copies the default values from AppConfig into a CamConfig.
// This is used when creating a new job so it inherits the user's saved defaults.
func (c AppConfig) ApplyToConfig(cfg *CamConfig) {
	cfg.ToolDiameter = c.DefaultToolDiameter
	cfg.StepOver = c.DefaultStepOver
	cfg.StepDown = c.DefaultStepDown
	cfg.FeedRate = c.DefaultFeedRate
	cfg.PlungeRate = c.DefaultPlungeRate
	cfg.SpindleSpeed = c.DefaultSpindleSpeed
	cfg.SafeZ = c.DefaultSafeZ
	cfg.CutDepth = c.DefaultCutDepth
	cfg.Strategy = c.DefaultStrategy
	cfg.GCodeProfile = c.DefaultGCodeProfile
}
