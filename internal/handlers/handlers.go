// Package handlers binds dispatcher commands to the stores and the repair
// calculator.
package handlers

import (
	"errors"
	"fmt"

	"github.com/chaoscampaign/tracker/internal/dispatcher"
	"github.com/chaoscampaign/tracker/internal/logging"
	"github.com/chaoscampaign/tracker/internal/parser"
	"github.com/chaoscampaign/tracker/internal/storage"
	"github.com/chaoscampaign/tracker/internal/store"
)

var (
	// ErrUsage means the positional arguments of a command were wrong.
	ErrUsage = errors.New("usage")
	// ErrNotFound means the addressed record does not exist.
	ErrNotFound = store.ErrNotFound
	// ErrRejected means a patch failed validation or could not be saved.
	// The reason is in the log.
	ErrRejected = errors.New("update rejected")
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Units      *store.UnitStore
	Forces     *store.ForceStore
	Campaigns  *store.CampaignStore
	Battles    *store.BattleStore
	Backend    storage.Backend
	Parser     *parser.Parser
	LogManager *logging.SlogManager
}

// Service provides handler methods for the tracker's commands
type Service struct {
	deps         Dependencies
	writeLogFunc func(functionName, data, level string)
}

// NewService creates a new handler service
func NewService(deps Dependencies) *Service {
	s := &Service{deps: deps}
	// Default writeLog function uses the logging manager
	s.writeLogFunc = func(functionName, data, level string) {
		if deps.LogManager != nil {
			deps.LogManager.WriteLog(functionName, data, level)
		}
	}
	return s
}

func (s *Service) writeLog(functionName, data, level string) {
	s.writeLogFunc(functionName, data, level)
}

// Register adds every command to d.
func (s *Service) Register(d *dispatcher.Dispatcher) {
	reg := func(name, usage string, h dispatcher.HandlerFunc) {
		d.Register(name, h, dispatcher.Logged(), dispatcher.Usage(usage))
	}

	reg("unit:add", "unit:add key=value...", s.AddUnit)
	reg("unit:update", "unit:update <id> key=value...", s.UpdateUnit)
	reg("unit:remove", "unit:remove <id>", s.RemoveUnit)
	reg("unit:get", "unit:get <id>", s.GetUnit)
	reg("unit:list", "unit:list", s.ListUnits)
	reg("unit:repair", "unit:repair <id>", s.RepairUnit)

	reg("force:add", "force:add name=... warchest=... scale=...", s.AddForce)
	reg("force:update", "force:update <id> key=value...", s.UpdateForce)
	reg("force:remove", "force:remove <id>", s.RemoveForce)
	reg("force:get", "force:get <id>", s.GetForce)
	reg("force:list", "force:list", s.ListForces)
	reg("force:repair", "force:repair <id>", s.RepairForce)
	reg("force:unit:add", "force:unit:add <forceId> key=value...", s.AddForceUnit)
	reg("force:unit:update", "force:unit:update <unitId> key=value...", s.UpdateForceUnit)
	reg("force:unit:remove", "force:unit:remove <forceId> <unitId>", s.RemoveForceUnit)
	reg("force:formation:add", "force:formation:add <forceId> name=... type=... unitIds=a,b", s.AddFormation)
	reg("force:formation:remove", "force:formation:remove <forceId> <formationId>", s.RemoveFormation)

	reg("campaign:add", "campaign:add key=value...", s.AddCampaign)
	reg("campaign:update", "campaign:update <id> key=value...", s.UpdateCampaign)
	reg("campaign:remove", "campaign:remove <id>", s.RemoveCampaign)
	reg("campaign:get", "campaign:get <id>", s.GetCampaign)
	reg("campaign:list", "campaign:list", s.ListCampaigns)

	reg("battle:add", "battle:add campaignId=... key=value...", s.AddBattle)
	reg("battle:update", "battle:update <id> key=value...", s.UpdateBattle)
	reg("battle:remove", "battle:remove <id>", s.RemoveBattle)
	reg("battle:get", "battle:get <id>", s.GetBattle)
	reg("battle:list", "battle:list [campaign=<id>]", s.ListBattles)

	reg("storage:backup", "storage:backup <path>", s.Backup)
}

// positional splits off n leading arguments.
func positional(e dispatcher.Event, n int) ([]string, []string, error) {
	if len(e.Args) < n {
		return nil, nil, fmt.Errorf("%w: %s needs %d argument(s), got %d", ErrUsage, e.Command, n, len(e.Args))
	}
	return e.Args[:n], e.Args[n:], nil
}

// exactly requires exactly n arguments.
func exactly(e dispatcher.Event, n int) ([]string, error) {
	if len(e.Args) != n {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrUsage, e.Command, n, len(e.Args))
	}
	return e.Args, nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// Removed is the result of a remove command.
type Removed struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}

// Backup writes a copy of the durable store to the path in args[0].
func (s *Service) Backup(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	b, ok := s.deps.Backend.(storage.Backupable)
	if !ok {
		return nil, fmt.Errorf("storage backend does not support backups")
	}
	if err := b.Backup(args[0]); err != nil {
		s.writeLog(":STORAGE:BACKUP:", fmt.Sprintf("Backup to %s failed: %v", args[0], err), "ERROR")
		return nil, err
	}
	s.writeLog(":STORAGE:BACKUP:", "Backup written to "+args[0], "INFO")
	return map[string]string{"path": args[0]}, nil
}
