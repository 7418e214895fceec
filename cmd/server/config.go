package main

import "time"

type Config struct {
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=3000"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	// ExtraPolicyPhrases extends the stock sensitive-phrase list
	// (comma separated) without rebuilding the binary.
	ExtraPolicyPhrases []string `env:"EXTRA_POLICY_PHRASES"`
}
