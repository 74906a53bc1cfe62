// Package config loads search settings from YAML or JSON files and LVSEARCH_*
// environment variables and converts them into algorithm options.
//
// Priority is env > file > defaults:
//
//	cfg, err := config.Load("lvsearch.yaml")
//	if err != nil {
//		return err
//	}
//	s, err := bestfirst.New(problem, eval, cfg.Options()...)
//
// Durations are written as Go duration strings ("250ms", "30s").
// A missing file is not an error; the defaults apply.
package config
