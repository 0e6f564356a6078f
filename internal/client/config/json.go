package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/steptrack/internal/flagx"
	"github.com/dmitrijs2005/steptrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds.
type JsonConfig struct {
	ServerAddr        string         `json:"server_addr"`
	DatabasePath      string         `json:"database_path"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	AutoFlushInterval timex.Duration `json:"auto_flush_interval"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag. No flag means no JSON overlay. Read or unmarshal errors
// panic; the config stage has nowhere sensible to report them.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerAddr != "" {
		cfg.ServerAddr = jc.ServerAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.AutoFlushInterval.Duration != 0 {
		cfg.AutoFlushInterval = time.Duration(jc.AutoFlushInterval.Duration)
	}
}
