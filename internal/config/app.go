package config

// AppConfig bundles everything the server binary reads from the environment.
type AppConfig struct {
	Server ServerConfig
	Log    LogConfig
}

func LoadApp() (AppConfig, error) {
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{Server: serverCfg, Log: logCfg}, nil
}
