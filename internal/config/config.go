package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration provides type-safe access to application settings
type Configuration struct {
	viper *viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("video.fps", 30.0)
	v.SetDefault("video.width", 1280)
	v.SetDefault("video.height", 720)
	v.SetDefault("video.bottom_margin", 60)
	v.SetDefault("subtitle.max_chars_per_line", 20)
	v.SetDefault("audio.pause_seconds", 0.25)
	v.SetDefault("tts.voice", "zh-CN-YunjianNeural")
	v.SetDefault("tts.rate", "+0%")
	v.SetDefault("tts.volume", "+0%")
	v.SetDefault("tts.pitch", "+0Hz")
	v.SetDefault("font.size", 32)
	v.SetDefault("tmp_dir", "./tmp")
}

// NewConfiguration creates a new Configuration instance with default settings
func NewConfiguration() *Configuration {
	v := viper.New()
	setDefaults(v)
	return &Configuration{viper: v}
}

// NewConfigurationFromFile creates a Configuration instance from a config file
func NewConfigurationFromFile(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	return &Configuration{viper: v}, nil
}

// NewConfigurationFromEnv creates a Configuration instance that reads from environment variables
func NewConfigurationFromEnv() *Configuration {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TEXTVID")
	v.AutomaticEnv()

	v.BindEnv("video.fps", "TEXTVID_FPS")
	v.BindEnv("video.width", "TEXTVID_WIDTH")
	v.BindEnv("video.height", "TEXTVID_HEIGHT")
	v.BindEnv("subtitle.max_chars_per_line", "TEXTVID_MAX_CHARS_PER_LINE")
	v.BindEnv("audio.pause_seconds", "TEXTVID_PAUSE_SECONDS")
	v.BindEnv("tts.voice", "TEXTVID_VOICE")
	v.BindEnv("font.path", "TEXTVID_FONT_PATH")

	return &Configuration{viper: v}
}

// GetFPS returns the configured output video frame rate
func (c *Configuration) GetFPS() float64 {
	return c.viper.GetFloat64("video.fps")
}

// GetFrameWidth returns the configured output frame width in pixels
func (c *Configuration) GetFrameWidth() int {
	return c.viper.GetInt("video.width")
}

// GetFrameHeight returns the configured output frame height in pixels
func (c *Configuration) GetFrameHeight() int {
	return c.viper.GetInt("video.height")
}

// GetBottomMargin returns the gap in pixels between the lowest subtitle
// line and the bottom edge of the frame
func (c *Configuration) GetBottomMargin() int {
	return c.viper.GetInt("video.bottom_margin")
}

// GetMaxCharsPerLine returns the maximum characters per subtitle line
func (c *Configuration) GetMaxCharsPerLine() int {
	return c.viper.GetInt("subtitle.max_chars_per_line")
}

// GetPauseSeconds returns the silence inserted between narrated units
func (c *Configuration) GetPauseSeconds() float64 {
	return c.viper.GetFloat64("audio.pause_seconds")
}

// GetVoice returns the configured speech engine voice name
func (c *Configuration) GetVoice() string {
	return c.viper.GetString("tts.voice")
}

// GetRate returns the incremental speech rate, e.g. "+0%"
func (c *Configuration) GetRate() string {
	return c.viper.GetString("tts.rate")
}

// GetVolume returns the incremental speech volume, e.g. "+0%"
func (c *Configuration) GetVolume() string {
	return c.viper.GetString("tts.volume")
}

// GetPitch returns the incremental speech pitch, e.g. "+0Hz"
func (c *Configuration) GetPitch() string {
	return c.viper.GetString("tts.pitch")
}

// GetFontPath returns the path of the subtitle font file
func (c *Configuration) GetFontPath() string {
	return c.viper.GetString("font.path")
}

// GetFontSize returns the subtitle font size in points
func (c *Configuration) GetFontSize() int {
	return c.viper.GetInt("font.size")
}

// GetTmpDir returns the working directory for intermediate audio files
func (c *Configuration) GetTmpDir() string {
	return c.viper.GetString("tmp_dir")
}
