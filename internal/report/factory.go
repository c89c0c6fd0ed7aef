package report

import (
	"log"

	"SessionSpectra/internal/config"
	"SessionSpectra/internal/model"
)

// NewWriters builds every enabled writer from the config. A writer that
// fails to initialize (e.g. an unreachable ClickHouse) is logged and
// skipped so the remaining writers still run.
func NewWriters(defs []config.WriterDef) []model.Writer {
	writers := make([]model.Writer, 0, len(defs))
	for _, def := range defs {
		if !def.Enabled {
			continue
		}

		switch def.Type {
		case "text":
			writers = append(writers, NewTextWriter(def.Text.RootPath))
		case "gob":
			writers = append(writers, NewGobWriter(def.Gob.RootPath))
		case "clickhouse":
			writer, err := NewClickHouseWriter(def.ClickHouse)
			if err != nil {
				log.Printf("Warning: failed to create writer type '%s': %v, skipping.", def.Type, err)
				continue
			}
			writers = append(writers, writer)
		default:
			log.Printf("Warning: unknown writer type '%s' in config, skipping.", def.Type)
		}
	}
	return writers
}
