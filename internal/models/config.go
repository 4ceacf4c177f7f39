package models

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/chrisdamba/mealgen/internal/datetext"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

type SamplingConfig struct {
	MaxSingles     int  `mapstructure:"max_singles"`
	MaxPairs       int  `mapstructure:"max_pairs"`
	MaxTriples     int  `mapstructure:"max_triples"`
	LargeGroupSize int  `mapstructure:"large_group_size"`
	Dedup          bool `mapstructure:"dedup"`
}

func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		MaxSingles:     5,
		MaxPairs:       5,
		MaxTriples:     3,
		LargeGroupSize: 5,
	}
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type DatabaseConfig struct {
	URL   string `mapstructure:"url"`
	Table string `mapstructure:"table"`
	// ReplaceRun deletes earlier rows of the run before the first copy.
	ReplaceRun bool `mapstructure:"replace_run"`
	// Verify reads the run back on close and compares row counts.
	Verify bool `mapstructure:"verify"`
}

// EnvPrefix namespaces environment overrides, e.g. MEALGEN_DATABASE_URL.
const EnvPrefix = "MEALGEN"

// ConfigureEnv lets MEALGEN_<KEY> variables override every key SetDefaults registers.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

type Config struct {
	Seed       int64     `mapstructure:"seed"`
	Today      time.Time `mapstructure:"today"`
	SampleSize int       `mapstructure:"sample_size"`
	DryRun     bool      `mapstructure:"dry_run"`

	// axes
	Quantities  []int    `mapstructure:"quantities"`
	Restaurants []string `mapstructure:"restaurants"`
	MealTypes   []string `mapstructure:"meal_types"`
	MealTimes   []string `mapstructure:"meal_times"`
	Notes       []string `mapstructure:"notes"`
	DayOffsets  []int    `mapstructure:"day_offsets"`

	NoteExcludedRestaurant string             `mapstructure:"note_excluded_restaurant"`
	UntimedMealTypes       []string           `mapstructure:"untimed_meal_types"`
	Sampling               SamplingConfig     `mapstructure:"sampling"`
	DateWindows            map[int]DateWindow `mapstructure:"date_windows"`

	SimulatePrices bool               `mapstructure:"simulate_prices"`
	MinPrice       int                `mapstructure:"min_price"`
	MaxPrice       int                `mapstructure:"max_price"`
	MealPrices     map[string]float64 `mapstructure:"meal_prices"` // "<restaurant>/<meal type>" -> unit price

	OutputFormat      string             `mapstructure:"output_format"`
	OutputDestination string             `mapstructure:"output_destination"`
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`
	KafkaEnabled      bool               `mapstructure:"kafka_enabled"`
	KafkaBrokerList   string             `mapstructure:"kafka_broker_list"`
	Topic             string             `mapstructure:"topic"`
	Database          DatabaseConfig     `mapstructure:"database"`
	ShowProgress      bool               `mapstructure:"show_progress"`

	LogLevel  string `mapstructure:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty"`
}

// SetDefaults registers every scalar key on v so a config file is optional and env
// overrides are found. Keys without a meaningful default get their zero value.
func SetDefaults(v *viper.Viper) {
	sampling := DefaultSamplingConfig()
	rules := DefaultInclusionRules()

	v.SetDefault("seed", 42)
	v.SetDefault("today", "")
	v.SetDefault("sample_size", 16)
	v.SetDefault("dry_run", false)
	v.SetDefault("quantities", []int{1, 2, 3})
	v.SetDefault("restaurants", toStrings(AllRestaurants()))
	v.SetDefault("meal_types", toStrings(AllMealTypes()))
	v.SetDefault("meal_times", toStrings(AllMealTimes()[:2]))
	v.SetDefault("notes", []string{"", "No onions, please"})
	v.SetDefault("day_offsets", []int{1, 2, 7})
	v.SetDefault("note_excluded_restaurant", string(rules.NoteExcludedRestaurant))
	v.SetDefault("untimed_meal_types", toStrings(rules.UntimedMealTypes))
	v.SetDefault("sampling.max_singles", sampling.MaxSingles)
	v.SetDefault("sampling.max_pairs", sampling.MaxPairs)
	v.SetDefault("sampling.max_triples", sampling.MaxTriples)
	v.SetDefault("sampling.large_group_size", sampling.LargeGroupSize)
	v.SetDefault("sampling.dedup", sampling.Dedup)
	v.SetDefault("simulate_prices", false)
	v.SetDefault("min_price", 45)
	v.SetDefault("max_price", 180)
	v.SetDefault("output_format", OutputFormatConsole)
	v.SetDefault("output_destination", OutputDestinationLocal)
	v.SetDefault("output_path", "")
	v.SetDefault("output_folder", "fixtures")
	v.SetDefault("cloud_storage.provider", "")
	v.SetDefault("cloud_storage.bucket_name", "")
	v.SetDefault("cloud_storage.region", "")
	v.SetDefault("kafka_enabled", false)
	v.SetDefault("kafka_broker_list", "localhost:9092")
	v.SetDefault("topic", TopicOrderRows)
	v.SetDefault("database.url", "")
	v.SetDefault("database.table", "meal_order_rows")
	v.SetDefault("database.replace_run", false)
	v.SetDefault("database.verify", false)
	v.SetDefault("show_progress", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
}

// LoadConfig reads the configuration using Viper
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			StringToDateHookFunc(),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	if config.DateWindows == nil {
		config.DateWindows = DefaultDateWindows()
	}
	if config.Today.IsZero() {
		config.Today = time.Now()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// StringToDateHookFunc decodes time.Time fields from any layout datetext understands.
func StringToDateHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Time{}) {
			return data, nil
		}
		s := strings.TrimSpace(data.(string))
		if s == "" {
			return time.Time{}, nil
		}
		return datetext.Parse(s, time.UTC)
	}
}

func (cfg *Config) Validate() error {
	if cfg.SampleSize <= 0 {
		return fmt.Errorf("%w: sample_size must be positive, got %d", ErrInvalidConfig, cfg.SampleSize)
	}
	s := cfg.Sampling
	if s.MaxSingles < 0 || s.MaxPairs < 0 || s.MaxTriples < 0 || s.LargeGroupSize < 0 {
		return fmt.Errorf("%w: sampling caps must not be negative", ErrInvalidConfig)
	}
	for _, q := range cfg.Quantities {
		if q <= 0 {
			return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidConfig, q)
		}
	}
	if cfg.SimulatePrices && len(cfg.MealPrices) == 0 && (cfg.MinPrice <= 0 || cfg.MaxPrice < cfg.MinPrice) {
		return fmt.Errorf("%w: price range %d..%d", ErrInvalidConfig, cfg.MinPrice, cfg.MaxPrice)
	}
	if !slices.Contains(OutputFormats, cfg.OutputFormat) {
		return fmt.Errorf("%w: unsupported output format %q", ErrInvalidConfig, cfg.OutputFormat)
	}
	return nil
}

// InclusionRules resolves the configured rule set.
func (cfg *Config) InclusionRules() (InclusionRules, error) {
	restaurant, err := ParseRestaurant(cfg.NoteExcludedRestaurant)
	if err != nil {
		return InclusionRules{}, err
	}
	untimed, err := ParseEnumList(cfg.UntimedMealTypes, ParseMealType)
	if err != nil {
		return InclusionRules{}, err
	}
	return InclusionRules{NoteExcludedRestaurant: restaurant, UntimedMealTypes: untimed}, nil
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
