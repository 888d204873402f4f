package config

import "fmt"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// WorkflowConfig tunes the report workflow core: bulk batch bounds and the
// workload scoring inputs used by officer auto-assignment.
type WorkflowConfig struct {
	BulkMaxBatchSize int `mapstructure:"bulk_max_batch_size"`

	// Balanced-strategy score = active_count + weight * (avg_resolution / baseline).
	BalancedWeight            float64 `mapstructure:"balanced_weight"`
	BaselineResolutionMinutes int     `mapstructure:"baseline_resolution_minutes"`
	WorkloadWindowDays        int     `mapstructure:"workload_window_days"`

	// Active task count thresholds for the capacity buckets.
	CapacityModerateThreshold   int `mapstructure:"capacity_moderate_threshold"`
	CapacityHighThreshold       int `mapstructure:"capacity_high_threshold"`
	CapacityOverloadedThreshold int `mapstructure:"capacity_overloaded_threshold"`
}
