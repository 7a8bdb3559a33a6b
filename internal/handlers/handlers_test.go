package handlers

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/chaoscampaign/tracker/internal/config"
	"github.com/chaoscampaign/tracker/internal/dispatcher"
	"github.com/chaoscampaign/tracker/internal/entity"
	"github.com/chaoscampaign/tracker/internal/logging"
	"github.com/chaoscampaign/tracker/internal/parser"
	"github.com/chaoscampaign/tracker/internal/repair"
	"github.com/chaoscampaign/tracker/internal/storage"
	"github.com/chaoscampaign/tracker/internal/storage/memory"
	sqlitestorage "github.com/chaoscampaign/tracker/internal/storage/sqlite"
	"github.com/chaoscampaign/tracker/internal/store"
	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	d    *dispatcher.Dispatcher
	deps Dependencies
	logs *bytes.Buffer
}

func newTestEnv(t *testing.T, backend storage.Backend) *testEnv {
	t.Helper()
	require.NoError(t, backend.Init())

	var logs bytes.Buffer
	logManager := logging.NewSlogManager()
	logManager.Setup(&logs, "debug", nil)
	logger := logManager.Logger()

	sd := store.Dependencies{Backend: backend, Logger: logger}
	units, err := store.NewUnitStore(sd)
	require.NoError(t, err)
	forces, err := store.NewForceStore(sd)
	require.NoError(t, err)
	campaigns, err := store.NewCampaignStore(sd)
	require.NoError(t, err)
	battles, err := store.NewBattleStore(sd)
	require.NoError(t, err)

	deps := Dependencies{
		Units:      units,
		Forces:     forces,
		Campaigns:  campaigns,
		Battles:    battles,
		Backend:    backend,
		Parser:     parser.NewParser(logger),
		LogManager: logManager,
	}

	d, err := dispatcher.New(logger)
	require.NoError(t, err)
	NewService(deps).Register(d)

	return &testEnv{d: d, deps: deps, logs: &logs}
}

func (env *testEnv) run(t *testing.T, command string, args ...string) (any, error) {
	t.Helper()
	return env.d.Dispatch(dispatcher.Event{Command: command, Args: args})
}

var hunchback = []string{
	"name=Hunchback", "type=mech", "pointValue=30", "currentArmor=100", "maxArmor=160",
	"currentStructure=80", "maxStructure=80", "pilotSkill=4", "status=damaged", "tonnage=50",
}

func TestRegister_AllCommands(t *testing.T) {
	env := newTestEnv(t, memory.New())

	for _, name := range []string{
		"unit:add", "unit:update", "unit:remove", "unit:get", "unit:list", "unit:repair",
		"force:add", "force:update", "force:remove", "force:get", "force:list", "force:repair",
		"force:unit:add", "force:unit:update", "force:unit:remove",
		"force:formation:add", "force:formation:remove",
		"campaign:add", "campaign:update", "campaign:remove", "campaign:get", "campaign:list",
		"battle:add", "battle:update", "battle:remove", "battle:get", "battle:list",
		"storage:backup",
	} {
		assert.True(t, env.d.HasHandler(name), name)
	}
	for _, c := range env.d.Commands() {
		assert.NotEmpty(t, c.Usage, c.Name)
	}
}

func TestUnitCommands(t *testing.T) {
	env := newTestEnv(t, memory.New())

	res, err := env.run(t, "unit:add", hunchback...)
	require.NoError(t, err)
	u := res.(core.Unit)
	assert.Equal(t, "Hunchback", u.Name)

	res, err = env.run(t, "unit:repair", u.ID)
	require.NoError(t, err)
	est := res.(repair.Estimate)
	assert.Equal(t, 50*2*60+50*2, est.Total)
	assert.Equal(t, "60 points of armor damage, Unit is damaged", est.Description)

	res, err = env.run(t, "unit:update", u.ID, "currentArmor=160", "status=operational")
	require.NoError(t, err)
	assert.Equal(t, 160, res.(core.Unit).CurrentArmor)

	_, err = env.run(t, "unit:update", u.ID, "maxArmor=10")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, env.logs.String(), "Rejected update")

	_, err = env.run(t, "unit:update", "missing", "name=x")
	assert.ErrorIs(t, err, ErrNotFound)

	res, err = env.run(t, "unit:list")
	require.NoError(t, err)
	assert.Len(t, res.([]core.Unit), 1)

	_, err = env.run(t, "unit:remove", u.ID)
	require.NoError(t, err)
	_, err = env.run(t, "unit:get", u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnitAdd_InvalidInput(t *testing.T) {
	env := newTestEnv(t, memory.New())

	_, err := env.run(t, "unit:add", "name=Broken", "type=mech", "pilotSkill=7", "tonnage=20")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = env.run(t, "unit:add", "tonnage")
	assert.ErrorIs(t, err, parser.ErrBadArgument)
}

func TestUsageErrors(t *testing.T) {
	env := newTestEnv(t, memory.New())

	_, err := env.run(t, "unit:get")
	assert.ErrorIs(t, err, ErrUsage)
	_, err = env.run(t, "unit:list", "extra")
	assert.ErrorIs(t, err, ErrUsage)
	_, err = env.run(t, "force:unit:remove", "only-one")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestForceCommands(t *testing.T) {
	env := newTestEnv(t, memory.New())

	res, err := env.run(t, "force:add", "name=Kell Hounds", "warchest=100", "scale=2")
	require.NoError(t, err)
	f := res.(core.Force)

	_, err = env.run(t, "force:unit:add", f.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = env.run(t, "force:unit:add", append([]string{"missing"}, hunchback...)...)
	assert.ErrorIs(t, err, ErrNotFound)

	res, err = env.run(t, "force:unit:add", append([]string{f.ID}, hunchback...)...)
	require.NoError(t, err)
	u := res.(core.Unit)

	res, err = env.run(t, "force:formation:add", f.ID, "name=Fire Lance", "type=lance", "unitIds="+u.ID)
	require.NoError(t, err)
	fm := res.(core.Formation)
	assert.Equal(t, []string{u.ID}, fm.UnitIDs)

	res, err = env.run(t, "force:repair", f.ID)
	require.NoError(t, err)
	bill := res.(ForceRepair)
	assert.Equal(t, 6100, bill.Total)
	require.Len(t, bill.Damaged, 1)
	assert.Contains(t, env.logs.String(), "warchest holds 100")

	res, err = env.run(t, "force:unit:update", u.ID, "status=repairing")
	require.NoError(t, err)
	assert.Equal(t, core.StatusRepairing, res.(core.Unit).Status)

	_, err = env.run(t, "force:unit:update", "missing", "status=repairing")
	assert.ErrorIs(t, err, ErrRejected)

	_, err = env.run(t, "force:formation:remove", f.ID, fm.ID)
	require.NoError(t, err)
	_, err = env.run(t, "force:unit:remove", f.ID, u.ID)
	require.NoError(t, err)
	_, err = env.run(t, "force:unit:remove", f.ID, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	res, err = env.run(t, "force:update", f.ID, "scale=4")
	require.NoError(t, err)
	assert.Equal(t, 4, res.(core.Force).Scale)

	_, err = env.run(t, "force:remove", f.ID)
	require.NoError(t, err)
	res, err = env.run(t, "force:list")
	require.NoError(t, err)
	assert.Empty(t, res.([]core.Force))
}

func TestCampaignAndBattleCommands(t *testing.T) {
	env := newTestEnv(t, memory.New())

	res, err := env.run(t, "campaign:add",
		"name=Operation Bulldog", "contractType=Invasion", "scale=3", "commandType=liason", "warchest=500")
	require.NoError(t, err)
	c := res.(core.Campaign)
	assert.Equal(t, core.CommandLiaison, c.CommandType)

	res, err = env.run(t, "battle:add", "campaignId="+c.ID, "name=Landing", "type=assault", "result=victory",
		"warchestChange=250")
	require.NoError(t, err)
	b := res.(core.Battle)

	res, err = env.run(t, "campaign:get", c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, res.(core.Campaign).BattleIDs)

	_, err = env.run(t, "battle:add", "campaignId=ghost", "name=Lost", "type=recon", "result=draw")
	require.NoError(t, err)
	assert.Contains(t, env.logs.String(), "not attached to campaign ghost")

	res, err = env.run(t, "battle:list", "campaign="+c.ID)
	require.NoError(t, err)
	assert.Equal(t, []core.Battle{b}, res.([]core.Battle))

	res, err = env.run(t, "battle:list")
	require.NoError(t, err)
	assert.Len(t, res.([]core.Battle), 2)

	res, err = env.run(t, "battle:update", b.ID, "result=defeat")
	require.NoError(t, err)
	assert.Equal(t, core.ResultDefeat, res.(core.Battle).Result)

	_, err = env.run(t, "battle:remove", b.ID)
	require.NoError(t, err)
	res, err = env.run(t, "campaign:get", c.ID)
	require.NoError(t, err)
	assert.Empty(t, res.(core.Campaign).BattleIDs)

	res, err = env.run(t, "campaign:update", c.ID, "planet=Luthien")
	require.NoError(t, err)
	assert.Equal(t, "Luthien", res.(core.Campaign).Planet)

	_, err = env.run(t, "campaign:update", c.ID, "scale=9")
	assert.ErrorIs(t, err, ErrRejected)

	_, err = env.run(t, "campaign:remove", c.ID)
	require.NoError(t, err)
	res, err = env.run(t, "campaign:list")
	require.NoError(t, err)
	assert.Empty(t, res.([]core.Campaign))
}

func TestBackup(t *testing.T) {
	t.Run("unsupported backend", func(t *testing.T) {
		env := newTestEnv(t, memory.New())
		_, err := env.run(t, "storage:backup", filepath.Join(t.TempDir(), "b.db"))
		assert.Error(t, err)
	})

	t.Run("sqlite", func(t *testing.T) {
		dir := t.TempDir()
		backend := sqlitestorage.New(config.SQLiteConfig{Path: filepath.Join(dir, "campaign.db")}, zerolog.Nop())
		env := newTestEnv(t, backend)
		t.Cleanup(func() { backend.Close() })

		_, err := env.run(t, "unit:add", hunchback...)
		require.NoError(t, err)

		path := filepath.Join(dir, "backup.db")
		_, err = env.run(t, "storage:backup", path)
		require.NoError(t, err)
		assert.FileExists(t, path)
	})
}

func TestWriteLogWithoutManager(t *testing.T) {
	s := NewService(Dependencies{})
	assert.NotPanics(t, func() { s.writeLog(":TEST:", "no manager", "INFO") })
}
