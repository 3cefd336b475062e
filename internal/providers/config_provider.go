package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"wedcms/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "WEDCMS_LOG_LEVEL")
	viper.BindEnv("webServer.port", "WEDCMS_PORT")
	viper.BindEnv("storage.dbPath", "WEDCMS_DB_PATH")
	viper.BindEnv("backup.dir", "WEDCMS_BACKUP_DIR")
	viper.BindEnv("backup.interval", "WEDCMS_BACKUP_INTERVAL")
	viper.BindEnv("upload.dir", "WEDCMS_UPLOAD_DIR")
	viper.BindEnv("cache.enabled", "WEDCMS_CACHE_ENABLED")
	viper.BindEnv("cache.size", "WEDCMS_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "WeddingContentService"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
