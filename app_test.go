package voxcore

import "testing"

func TestAppBuildInstallsStagesOnce(t *testing.T) {
	app := NewApp()
	app.build()
	if len(app.stages) != 8 {
		t.Fatalf("expected 8 stages after build, got %d", len(app.stages))
	}
	stages := len(app.stages)
	app.build()
	if len(app.stages) != stages*2 {
		t.Fatalf("build is not idempotent by itself; Run guards it with app.built instead")
	}
}

func TestRunBuildsExactlyOnce(t *testing.T) {
	app := NewApp()
	if app.built {
		t.Fatalf("a fresh app should not be built yet")
	}
	// Run itself never returns, so this repeats Run's app.built guard
	// inline twice instead of calling Run.
	if !app.built {
		app.build()
		app.built = true
	}
	stagesAfterFirst := len(app.stages)
	if !app.built {
		app.build()
	}
	if len(app.stages) != stagesAfterFirst {
		t.Fatalf("expected build to run only once when app.built guards it")
	}
}

func TestAddResourcesRejectsDuplicateType(t *testing.T) {
	app := NewApp()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected a panic registering the same resource type twice")
		}
	}()
	app.addResources(&Time{Dt: 1})
	app.addResources(&Time{Dt: 2})
}

func TestFlushPendingAppliesDeferredMutations(t *testing.T) {
	app := NewApp()
	app.build()
	cmd := app.Commands()

	eid := cmd.AddEntity(posComp{X: 5, Y: 5})
	if _, ok := app.ecs.entityIndex[eid]; ok {
		t.Fatalf("entity should not be live in the ecs until flushPending runs")
	}

	app.flushPending()

	if _, ok := app.ecs.entityIndex[eid]; !ok {
		t.Fatalf("expected entity to be live after flushPending")
	}
	if len(app.pendingAdditions) != 0 {
		t.Fatalf("expected pendingAdditions to be drained after flushPending")
	}
}

func TestFlushPendingAppliesComponentAddAndRemoval(t *testing.T) {
	app := NewApp()
	app.build()
	cmd := app.Commands()

	eid := cmd.AddEntity(posComp{X: 1})
	app.flushPending()

	cmd.AddComponents(eid, velComp{X: 2, Y: 2})
	app.flushPending()

	archId := app.ecs.entityIndex[eid]
	if len(app.ecs.archetypes[archId].key) != 2 {
		t.Fatalf("expected 2 components after deferred AddComponents")
	}

	cmd.RemoveComponents(eid, velComp{})
	app.flushPending()

	archId = app.ecs.entityIndex[eid]
	if len(app.ecs.archetypes[archId].key) != 1 {
		t.Fatalf("expected 1 component after deferred RemoveComponents")
	}
}

func TestFlushPendingAppliesEntityRemoval(t *testing.T) {
	app := NewApp()
	app.build()
	cmd := app.Commands()

	eid := cmd.AddEntity(posComp{X: 1})
	app.flushPending()

	cmd.RemoveEntity(eid)
	app.flushPending()

	if _, ok := app.ecs.entityIndex[eid]; ok {
		t.Fatalf("expected entity to be gone after deferred removal is flushed")
	}
}

func TestCallSystemInternalInjectsCommandsAndTime(t *testing.T) {
	app := NewApp()
	app.build()
	app.time.Dt = 0.5

	var gotDt float64
	var gotCmd bool
	system := func(time *Time, cmd *Commands) {
		gotDt = time.Dt
		gotCmd = cmd != nil
	}

	app.callSystemInternal(system)

	if gotDt != 0.5 {
		t.Fatalf("expected injected Time.Dt == 0.5, got %v", gotDt)
	}
	if !gotCmd {
		t.Fatalf("expected a non-nil Commands to be injected")
	}
}

func TestCallSystemInternalInjectsResource(t *testing.T) {
	app := NewApp()
	app.build()
	app.addResources(&GravityConfig{GravitationalConstant: 9.8})

	var got float32
	system := func(cfg *GravityConfig) {
		got = cfg.GravitationalConstant
	}

	app.callSystemInternal(system)

	if got != 9.8 {
		t.Fatalf("expected injected GravityConfig.GravitationalConstant == 9.8, got %v", got)
	}
}

func TestUseSystemRunsAlwaysSystemEachStatelessLoop(t *testing.T) {
	app := NewApp()
	app.build()

	ran := 0
	app.UseSystem(System(func(cmd *Commands) { ran++ }).InStage(Update).RunAlways())

	app.flushPending()
	for _, stage := range app.stages {
		app.callSystems(app.systemsStateless[stage.Name])
	}

	if ran != 1 {
		t.Fatalf("expected the always-run system to execute once, got %d", ran)
	}
}

func TestChangeStateTransitionsOnNextFrame(t *testing.T) {
	const (
		stateMenu State = iota
		statePlaying
	)
	app := NewApp().UseStates(stateMenu, statePlaying)
	app.build()

	app.executeChangeState(app.initialState)
	if app.state != stateMenu {
		t.Fatalf("expected initial state to be stateMenu")
	}

	cmd := app.Commands()
	cmd.ChangeState(statePlaying)
	if !app.stateTransitioning {
		t.Fatalf("expected ChangeState to mark the app as transitioning")
	}

	app.executeChangeState(app.nextState)
	if app.state != statePlaying {
		t.Fatalf("expected state to have transitioned to statePlaying")
	}
}
