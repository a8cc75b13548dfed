package voxcore

import (
	"fmt"
	"reflect"
	"runtime"
	"time"
)

// Time is the frame-timing resource injected into systems that declare
// a *Time argument, following the same resource-injection convention as
// Commands itself.
type Time struct {
	Dt float64
}

type System any
type systemFn = System

// State identifies a phase of the app's stateful state machine (§4.13);
// stateless apps never transition out of STATELESS_STATE.
type State int

// App is the root of the ECS shell (C13): entity/component storage,
// module installation, the stage/state schedule, and the deferred
// mutation stager that Commands writes into.
type App struct {
	stateful            bool
	stateMachineStarted bool
	stateTransitioning  bool
	initialState        State
	finalState          State
	nextState           State
	state               State

	stages           []Stage
	systems          map[string]map[State]map[statePhase][]systemFn
	systemsStateless map[string][]systemFn

	resources map[reflect.Type]any
	ecs       *Ecs
	modules   []Module

	pendingAdditions    []pendingAdd
	pendingCompAdds     []pendingCompAdd
	pendingCompRemovals []pendingCompRemoval
	pendingRemovals     []EntityId

	built bool
	time  Time
}

const STATELESS_STATE State = 0

type Module interface {
	Install(app *App, commands *Commands)
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// Run drives the app's main loop. In stateless mode it loops forever
// executing every registered system each iteration; in stateful mode it
// walks the state machine from initialState to finalState, calling
// enter/execute/exit systems at the appropriate transitions.
func (app *App) Run() {
	if !app.built {
		app.build()
		app.built = true
	}
	if app.stateful {
		app.runStateful()
	} else {
		app.runStateless()
	}
}

func (app *App) runStateful() {
	app.Logger().Infof("running in stateful mode")

	app.executeChangeState(app.initialState)

	for {
		frameStart := time.Now()
		app.flushPending()
		app.callStatefulSystems(app.state, execute)
		app.time.Dt = time.Since(frameStart).Seconds()

		if app.stateTransitioning {
			app.stateTransitioning = false
			app.executeChangeState(app.nextState)
		}

		if app.state == app.finalState {
			break
		}
	}

	app.callStatefulSystems(app.state, exit)
}

func (app *App) runStateless() {
	app.Logger().Infof("running in stateless mode")

	for {
		frameStart := time.Now()
		app.flushPending()
		for _, stage := range app.stages {
			app.callSystems(app.systemsStateless[stage.Name])
		}
		app.time.Dt = time.Since(frameStart).Seconds()
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	if !app.stateMachineStarted {
		app.stateMachineStarted = true
		app.state = newState
		app.callStatefulSystems(app.state, enter)
	} else {
		app.callStatefulSystems(app.state, exit)
		app.state = newState
		app.callStatefulSystems(app.state, enter)
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
	return app
}

func (app *App) callStatefulSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		app.callSystems(app.systemsStateless[stage.Name])
		if app.stateful {
			if byState, ok := app.systems[stage.Name]; ok {
				app.callSystems(byState[state][phase])
			}
		}
	}
}

func (app *App) callSystems(systems []systemFn) {
	for _, system := range systems {
		app.callSystem(system)
	}
}

func (app *App) callSystem(system System) {
	start := time.Now()
	app.callSystemInternal(system)
	app.Logger().Debugf(
		"system %s: %dms",
		runtime.FuncForPC(reflect.ValueOf(system).Pointer()).Name(),
		time.Since(start).Milliseconds(),
	)
}

var typeOfCommands = reflect.TypeOf(Commands{})
var typeOfTime = reflect.TypeOf(Time{})

func (app *App) callSystemInternal(system System) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		switch {
		case underlyingType == typeOfCommands:
			args[i] = reflect.ValueOf(&Commands{app: app})
		case underlyingType == typeOfTime:
			args[i] = reflect.ValueOf(&app.time)
		default:
			if resource, argIsResource := app.resources[underlyingType]; argIsResource {
				resourceVal := reflect.ValueOf(resource)
				args[i] = reflect.NewAt(underlyingType, resourceVal.UnsafePointer())
			} else {
				msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
					runtime.FuncForPC(systemValue.Pointer()).Name(),
					fmt.Sprint(systemType),
					fmt.Sprint(argType),
				)
				panic(msg)
			}
		}
	}
	systemValue.Call(args)
}

// flushPending applies every deferred mutation Commands recorded during
// the last frame, so in-flight queries never observe a half-mutated
// archetype while a system is iterating it.
func (app *App) flushPending() {
	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	for _, add := range app.pendingCompAdds {
		app.ecs.addComponents(add.eid, add.components...)
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]

	for _, rem := range app.pendingCompRemovals {
		app.ecs.removeComponents(rem.eid, rem.components...)
	}
	app.pendingCompRemovals = app.pendingCompRemovals[:0]

	for _, eid := range app.pendingRemovals {
		app.ecs.removeEntity(eid)
	}
	app.pendingRemovals = app.pendingRemovals[:0]
}
