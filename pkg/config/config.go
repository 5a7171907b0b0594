package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log       LogConfig
	Input     InputConfig
	Output    OutputConfig
	Grid      GridConfig
	Scheduler SchedulerConfig
	Server    ServerConfig
	Store     StoreConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// InputConfig points at the four normalized input tables.
type InputConfig struct {
	Enrollments string
	Courses     string
	Rooms       string
	Lecturers   string
	Delimiter   rune
}

type OutputConfig struct {
	Path   string
	Format string
}

// GridConfig shapes the weekly slot universe.
type GridConfig struct {
	OpeningHour   int
	ClosingHour   int
	BlackoutDay   string
	BlackoutStart int
	BlackoutEnd   int
}

// SchedulerConfig toggles engine behaviour.
type SchedulerConfig struct {
	PartialCommit  bool
	CapacityFactor float64
}

type ServerConfig struct {
	Port    int
	DataDir string
}

// StoreConfig selects where generated timetables are kept.
type StoreConfig struct {
	Driver string
	DSN    string
}

// Load reads .env, an optional config file and TIMETABLE_* environment variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TIMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	return fromViper(v), nil
}

// SchedulerConfiguration maps the grid and scheduler sections onto the engine
// configuration.
func (c *Config) SchedulerConfiguration() (*scheduler.Configuration, error) {
	day, err := model.ParseWeekday(c.Grid.BlackoutDay)
	if err != nil {
		return nil, err
	}
	sc := scheduler.NewDefaultConfiguration()
	sc.OpeningHour = c.Grid.OpeningHour
	sc.ClosingHour = c.Grid.ClosingHour
	sc.BlackoutDay = day
	sc.BlackoutStart = c.Grid.BlackoutStart
	sc.BlackoutEnd = c.Grid.BlackoutEnd
	sc.PartialCommit = c.Scheduler.PartialCommit
	sc.CapacityFactor = c.Scheduler.CapacityFactor
	return sc, nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}
	cfg.Env = v.GetString("env")

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	cfg.Input = InputConfig{
		Enrollments: v.GetString("input.enrollments"),
		Courses:     v.GetString("input.courses"),
		Rooms:       v.GetString("input.rooms"),
		Lecturers:   v.GetString("input.lecturers"),
		Delimiter:   parseDelimiter(v.GetString("input.delimiter")),
	}

	cfg.Output = OutputConfig{
		Path:   v.GetString("output.path"),
		Format: strings.ToLower(v.GetString("output.format")),
	}

	cfg.Grid = GridConfig{
		OpeningHour:   v.GetInt("grid.opening_hour"),
		ClosingHour:   v.GetInt("grid.closing_hour"),
		BlackoutDay:   v.GetString("grid.blackout_day"),
		BlackoutStart: v.GetInt("grid.blackout_start"),
		BlackoutEnd:   v.GetInt("grid.blackout_end"),
	}

	cfg.Scheduler = SchedulerConfig{
		PartialCommit:  v.GetBool("scheduler.partial_commit"),
		CapacityFactor: v.GetFloat64("scheduler.capacity_factor"),
	}

	cfg.Server = ServerConfig{
		Port:    v.GetInt("server.port"),
		DataDir: v.GetString("server.data_dir"),
	}

	cfg.Store = StoreConfig{
		Driver: strings.ToLower(v.GetString("store.driver")),
		DSN:    v.GetString("store.dsn"),
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("input.enrollments", "./res/AdvisedCourses.csv")
	v.SetDefault("input.courses", "./res/CourseDetails.csv")
	v.SetDefault("input.rooms", "./res/Rooms.csv")
	v.SetDefault("input.lecturers", "./res/LecturerPreferences.csv")
	v.SetDefault("input.delimiter", ",")

	v.SetDefault("output.path", "final_timetable.csv")
	v.SetDefault("output.format", "csv")

	v.SetDefault("grid.opening_hour", 8)
	v.SetDefault("grid.closing_hour", 16)
	v.SetDefault("grid.blackout_day", "Tuesday")
	v.SetDefault("grid.blackout_start", 10)
	v.SetDefault("grid.blackout_end", 12)

	v.SetDefault("scheduler.partial_commit", false)
	v.SetDefault("scheduler.capacity_factor", 0.0)

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.data_dir", "db")

	v.SetDefault("store.driver", "file")
	v.SetDefault("store.dsn", "")
}

func parseDelimiter(raw string) rune {
	switch raw {
	case "", ",":
		return ','
	case "\\t", "tab":
		return '\t'
	}
	return []rune(raw)[0]
}
