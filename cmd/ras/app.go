package main

import (
	"context"
	"fmt"

	"github.com/rankmath/repair-action-scheduler/internal/application/services"
	"github.com/rankmath/repair-action-scheduler/internal/domain/ports"
	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
	"github.com/rankmath/repair-action-scheduler/internal/infrastructure/database"
	"github.com/rankmath/repair-action-scheduler/internal/infrastructure/persistence"
	"github.com/rankmath/repair-action-scheduler/pkg/config"
)

// app holds the wired components for one command
type app struct {
	cfg            *config.Config
	conn           *database.Connection
	tables         *persistence.SchemaRepository
	repair         *services.RepairService
	charsetCollate string
}

func loadConfig() (*config.Config, error) {
	return config.Load(v, cfgFile)
}

// newApp connects to the database and wires the repair service.
func newApp(ctx context.Context, notifier ports.Notifier) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// Catch a broken table definition before touching the database
	if err := schema.ValidateCatalog(); err != nil {
		return nil, fmt.Errorf("table catalog is invalid: %w", err)
	}

	gate, err := services.NewVersionGate(cfg.Repair.ObsoleteWhen)
	if err != nil {
		return nil, err
	}

	conn, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	charsetCollate := schema.CharsetCollate(cfg.DB.Charset, cfg.DB.Collate)
	tables := persistence.NewSchemaRepository(conn.DB(), cfg.DB.Prefix, charsetCollate)
	options := persistence.NewOptionsRepository(conn.DB(), cfg.DB.Prefix, cfg.Settings.Table)
	disabler := persistence.NewSettingsDisabler(options, cfg.Settings.DisabledKey)

	svc, err := services.NewRepairService(services.RepairDeps{
		Settings:  options,
		Inspector: tables,
		DDL:       tables,
		Notifier:  notifier,
		Disabler:  disabler,
	}, services.RepairOptions{
		RecordKey:       cfg.Settings.RecordKey,
		StoreSchemaKey:  cfg.Settings.StoreSchemaKey,
		LoggerSchemaKey: cfg.Settings.LoggerSchemaKey,
		Gate:            gate,
	})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &app{
		cfg:            cfg,
		conn:           conn,
		tables:         tables,
		repair:         svc,
		charsetCollate: charsetCollate,
	}, nil
}

func (a *app) Close() {
	_ = a.conn.Close()
}
