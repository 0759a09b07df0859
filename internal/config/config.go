package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Metrics    MetricsConfig    `yaml:"metrics" mapstructure:"metrics"`
	Population PopulationConfig `yaml:"population" mapstructure:"population"`
	Complaints ComplaintsConfig `yaml:"complaints" mapstructure:"complaints"`
	CCTV       CCTVConfig       `yaml:"cctv" mapstructure:"cctv"`
	Sample     SampleConfig     `yaml:"sample" mapstructure:"sample"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// MetricsConfig locates the per-district complaint / parking-lot workbook.
type MetricsConfig struct {
	Path          string `yaml:"path" mapstructure:"path"`
	SheetIndex    int    `yaml:"sheet_index" mapstructure:"sheet_index" validate:"gte=0"`
	DistrictCol   string `yaml:"district_col" mapstructure:"district_col" validate:"required"`
	ComplaintsCol string `yaml:"complaints_col" mapstructure:"complaints_col" validate:"required"`
	LotsCol       string `yaml:"lots_col" mapstructure:"lots_col" validate:"required"`
}

// PopulationConfig locates the usable block inside the registered-population
// workbook. Rows are [StartRow, EndRow), columns are zero-based.
type PopulationConfig struct {
	Path          string `yaml:"path" mapstructure:"path"`
	SheetIndex    int    `yaml:"sheet_index" mapstructure:"sheet_index" validate:"gte=0"`
	StartRow      int    `yaml:"start_row" mapstructure:"start_row" validate:"gte=0"`
	EndRow        int    `yaml:"end_row" mapstructure:"end_row" validate:"gtfield=StartRow"`
	DistrictCol   int    `yaml:"district_col" mapstructure:"district_col" validate:"gte=0"`
	PopulationCol int    `yaml:"population_col" mapstructure:"population_col" validate:"gte=0"`
}

// ComplaintsConfig describes the illegal-parking report CSV.
type ComplaintsConfig struct {
	Path            string    `yaml:"path" mapstructure:"path"`
	Charset         string    `yaml:"charset" mapstructure:"charset" validate:"required"`
	AddressCol      string    `yaml:"address_col" mapstructure:"address_col" validate:"required"`
	LatCol          string    `yaml:"lat_col" mapstructure:"lat_col" validate:"required"`
	LonCol          string    `yaml:"lon_col" mapstructure:"lon_col" validate:"required"`
	ReceivedCol     string    `yaml:"received_col" mapstructure:"received_col"`
	DistrictPattern string    `yaml:"district_pattern" mapstructure:"district_pattern" validate:"required"`
	Map             MapConfig `yaml:"map" mapstructure:"map"`
}

// CCTVConfig describes the CCTV installation CSV.
type CCTVConfig struct {
	Path    string    `yaml:"path" mapstructure:"path"`
	Charset string    `yaml:"charset" mapstructure:"charset" validate:"required"`
	SiteCol string    `yaml:"site_col" mapstructure:"site_col" validate:"required"`
	LatCol  string    `yaml:"lat_col" mapstructure:"lat_col" validate:"required"`
	LonCol  string    `yaml:"lon_col" mapstructure:"lon_col" validate:"required"`
	Map     MapConfig `yaml:"map" mapstructure:"map"`
}

// MapConfig holds the initial view of a map widget.
type MapConfig struct {
	CenterLat float64 `yaml:"center_lat" mapstructure:"center_lat" validate:"gte=-90,lte=90"`
	CenterLon float64 `yaml:"center_lon" mapstructure:"center_lon" validate:"gte=-180,lte=180"`
	Zoom      int     `yaml:"zoom" mapstructure:"zoom" validate:"gte=0,lte=20"`
}

// SampleConfig bounds how many complaint markers are rendered.
type SampleConfig struct {
	Size int    `yaml:"size" mapstructure:"size" validate:"gte=0"`
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst" validate:"gte=0"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json console"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PARKING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("metrics.path", "자치구별_민원_주차장_조정버전.xlsx")
	v.SetDefault("metrics.sheet_index", 0)
	v.SetDefault("metrics.district_col", "자치구")
	v.SetDefault("metrics.complaints_col", "불법주정차_민원건수")
	v.SetDefault("metrics.lots_col", "공영주차장_개수")
	v.SetDefault("population.path", "등록인구_20250620115657.xlsx")
	v.SetDefault("population.sheet_index", 0)
	v.SetDefault("population.start_row", 4)
	v.SetDefault("population.end_row", 25)
	v.SetDefault("population.district_col", 1)
	v.SetDefault("population.population_col", 3)
	v.SetDefault("complaints.path", "불법주정차 신고현황(23년11월1일_24년3월13일).csv")
	v.SetDefault("complaints.charset", "utf-8")
	v.SetDefault("complaints.address_col", "주소")
	v.SetDefault("complaints.lat_col", "위도")
	v.SetDefault("complaints.lon_col", "경도")
	v.SetDefault("complaints.received_col", "민원접수일")
	v.SetDefault("complaints.district_pattern", `서울특별시\s+(\S+구)`)
	v.SetDefault("complaints.map.center_lat", 37.5665)
	v.SetDefault("complaints.map.center_lon", 126.9780)
	v.SetDefault("complaints.map.zoom", 11)
	v.SetDefault("cctv.path", "경상남도 진주시_CCTV위치정보_20250501.csv")
	v.SetDefault("cctv.charset", "euc-kr")
	v.SetDefault("cctv.site_col", "설치장소")
	v.SetDefault("cctv.lat_col", "위도")
	v.SetDefault("cctv.lon_col", "경도")
	v.SetDefault("cctv.map.center_lat", 35.1799817)
	v.SetDefault("cctv.map.center_lon", 128.1076213)
	v.SetDefault("cctv.map.zoom", 13)
	v.SetDefault("sample.size", 5000)
	v.SetDefault("sample.seed", 42)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks field ranges, then the inputs required by the given mode.
// Modes: "prepare", "cctv", "serve".
func (c *Config) Validate(mode string) error {
	if err := validate.Struct(c); err != nil {
		return eris.Wrap(err, "config: validate")
	}

	var missing []string
	switch mode {
	case "prepare":
		missing = c.requirePrepare()
	case "cctv":
		if c.CCTV.Path == "" {
			missing = append(missing, "cctv.path is required")
		}
	case "serve":
		missing = c.requirePrepare()
		if c.Server.Port <= 0 {
			missing = append(missing, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(missing) > 0 {
		return eris.Errorf("config: %s", strings.Join(missing, "; "))
	}
	return nil
}

func (c *Config) requirePrepare() []string {
	var missing []string
	if c.Metrics.Path == "" {
		missing = append(missing, "metrics.path is required")
	}
	if c.Population.Path == "" {
		missing = append(missing, "population.path is required")
	}
	return missing
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
