package config

import (
	dataErrors "bikeshare/domain/errors"
	"bikeshare/loader"
	"bikeshare/sink"
	"bikeshare/statistics"
	"bikeshare/utils"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"io/fs"
)

const (
	DefaultConfigFilepath = "./config/config.yaml"
	envPrefix             = "BIKESHARE"
)

var (
	defaultCities = map[string]string{
		"chicago":       "chicago.csv",
		"new york city": "new_york_city.csv",
		"washington":    "washington.csv",
	}
	defaultMonths   = []string{"january", "february", "march", "april", "may", "june"}
	defaultWeekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
)

// AnalyzerConfig configuration of the bikeshare analyzer
// + LogLevel: logrus level name
// + DataDir: directory used to resolve relative dataset paths
// + Cities: city name -> dataset path
// + Months: canonical ordered list of months. The position of a month plus one is its number
// + Weekdays: accepted weekday names
// + TimeLayouts: layouts tried, in order, to parse Start Time and End Time
// + PairSeparator: string placed between start and end station of a trip
// + ParallelLoad: read the datasets of several cities concurrently
// + StationsFile: optional YAML file with station coordinates
// + ReportSink: where reports are sent
type AnalyzerConfig struct {
	LogLevel      string            `yaml:"log_level" validate:"required,oneof=trace debug info warn warning error fatal panic"`
	DataDir       string            `yaml:"data_dir"`
	Cities        map[string]string `yaml:"cities" validate:"required,min=1,dive,keys,required,endkeys,required"`
	Months        []string          `yaml:"months" validate:"required,min=1,max=12,dive,required"`
	Weekdays      []string          `yaml:"weekdays" validate:"len=7,dive,required"`
	TimeLayouts   []string          `yaml:"time_layouts" validate:"required,min=1,dive,required"`
	PairSeparator string            `yaml:"pair_separator" validate:"required"`
	ParallelLoad  bool              `yaml:"parallel_load"`
	StationsFile  string            `yaml:"stations_file"`
	ReportSink    sink.Config       `yaml:"report_sink"`
}

// envOverrides values that can be overridden with BIKESHARE_ environment variables
type envOverrides struct {
	LogLevel     string `envconfig:"LOG_LEVEL"`
	DataDir      string `envconfig:"DATA_DIR"`
	Sink         string `envconfig:"SINK"`
	RabbitURL    string `envconfig:"RABBIT_URL"`
	ParallelLoad *bool  `envconfig:"PARALLEL_LOAD"`
}

// Default returns the configuration used when no config file is found
func Default() *AnalyzerConfig {
	cities := make(map[string]string, len(defaultCities))
	for city, datasetPath := range defaultCities {
		cities[city] = datasetPath
	}

	return &AnalyzerConfig{
		LogLevel:      "info",
		DataDir:       ".",
		Cities:        cities,
		Months:        append([]string(nil), defaultMonths...),
		Weekdays:      append([]string(nil), defaultWeekdays...),
		TimeLayouts:   append([]string(nil), loader.DefaultTimeLayouts...),
		PairSeparator: statistics.DefaultPairSeparator,
		ParallelLoad:  true,
		ReportSink: sink.Config{
			Type: sink.ConsoleSinkType,
		},
	}
}

// LoadConfig reads the YAML file in configFilepath, if it exists, applies the environment overrides
// and validates the result
func LoadConfig(configFilepath string) (*AnalyzerConfig, error) {
	analyzerConfig := Default()

	if utils.FileExists(configFilepath) {
		configFile, err := utils.GetConfigFile(configFilepath)
		if err != nil {
			return nil, err
		}

		// cities listed in the file replace the default ones
		analyzerConfig.Cities = nil
		err = yaml.Unmarshal(configFile, analyzerConfig)
		if err != nil {
			return nil, fmt.Errorf("%w: error parsing analyzer config file: %s", dataErrors.ErrInvalidConfig, err)
		}
		if len(analyzerConfig.Cities) == 0 {
			analyzerConfig.Cities = Default().Cities
		}
	} else {
		log.Debugf("[config] config file %s not found, using defaults", configFilepath)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var overrides envOverrides
	if err := envconfig.Process(envPrefix, &overrides); err != nil {
		return nil, fmt.Errorf("%w: error reading environment: %s", dataErrors.ErrInvalidConfig, err)
	}
	analyzerConfig.applyOverrides(overrides)

	if err := analyzerConfig.Validate(); err != nil {
		return nil, err
	}

	return analyzerConfig, nil
}

// Validate checks the struct tags of the config and the parameters of the report sink
func (ac *AnalyzerConfig) Validate() error {
	validate := validator.New()
	validate.RegisterStructValidation(validateSinkConfig, sink.Config{})

	if err := validate.Struct(ac); err != nil {
		return fmt.Errorf("%w: %s", dataErrors.ErrInvalidConfig, err)
	}
	return nil
}

func validateSinkConfig(structLevel validator.StructLevel) {
	sinkConfig := structLevel.Current().Interface().(sink.Config)
	switch sinkConfig.Type {
	case sink.ConsoleSinkType:
	case sink.RabbitMQSinkType:
		if sinkConfig.RabbitMQ.URL == "" {
			structLevel.ReportError(sinkConfig.RabbitMQ.URL, "URL", "url", "required_with_rabbitmq", "")
		}
		if sinkConfig.RabbitMQ.Queue.Name == "" {
			structLevel.ReportError(sinkConfig.RabbitMQ.Queue.Name, "Name", "name", "required_with_rabbitmq", "")
		}
	default:
		structLevel.ReportError(sinkConfig.Type, "Type", "type", "oneof", "console rabbitmq")
	}
}

func (ac *AnalyzerConfig) applyOverrides(overrides envOverrides) {
	if overrides.LogLevel != "" {
		ac.LogLevel = overrides.LogLevel
	}
	if overrides.DataDir != "" {
		ac.DataDir = overrides.DataDir
	}
	if overrides.Sink != "" {
		ac.ReportSink.Type = overrides.Sink
	}
	if overrides.RabbitURL != "" {
		ac.ReportSink.RabbitMQ.URL = overrides.RabbitURL
	}
	if overrides.ParallelLoad != nil {
		ac.ParallelLoad = *overrides.ParallelLoad
	}
}
