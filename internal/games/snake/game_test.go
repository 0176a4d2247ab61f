package snake

import (
	"sync"
	"testing"

	"github.com/vovakirdan/term-snake/internal/core"
)

func newTestEngine(t *testing.T, foodCount int) *Engine {
	t.Helper()
	cfg := core.RuntimeConfig{
		Board: core.Board{Columns: 20, Rows: 10},
		Seed:  12345,
	}
	e, err := NewEngine(cfg, Options{FoodCount: foodCount, AvoidSnake: true})
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	// Keep food out of the spawn row unless a test puts it there.
	for i := 0; i < e.food.Len(); i++ {
		e.food.Set(i, core.Point{X: 3 + i, Y: 3})
	}
	return e
}

func TestNewEngineRejectsSmallBoard(t *testing.T) {
	_, err := NewEngine(core.RuntimeConfig{Board: core.Board{Columns: 4, Rows: 4}}, Options{})
	if err == nil {
		t.Error("NewEngine should reject a 4x4 board")
	}
}

func TestInitialState(t *testing.T) {
	e := newTestEngine(t, 1)
	snap := e.Snapshot()

	if snap.Lifecycle != Playing {
		t.Errorf("Expected lifecycle Playing, got %s", snap.Lifecycle)
	}
	if snap.Head() != (core.Point{X: 9, Y: 5}) {
		t.Errorf("Expected head at (9, 5), got %v", snap.Head())
	}
	if snap.Length() != 1 {
		t.Errorf("Expected length 1, got %d", snap.Length())
	}
	if snap.Direction != core.Right {
		t.Errorf("Expected direction right, got %s", snap.Direction)
	}
}

func TestTickMovesHead(t *testing.T) {
	e := newTestEngine(t, 1)

	for i := 1; i <= 5; i++ {
		before := e.Snapshot()
		res := e.Tick()
		after := e.Snapshot()

		if !res.Advanced {
			t.Fatalf("tick %d should advance while playing", i)
		}
		if after.Length() != before.Length() {
			t.Errorf("tick %d: length changed from %d to %d without food", i, before.Length(), after.Length())
		}
		expected := before.Head().Add(before.Direction)
		if after.Head() != expected {
			t.Errorf("tick %d: head = %v, expected %v", i, after.Head(), expected)
		}
	}
}

func TestEatFood(t *testing.T) {
	e := newTestEngine(t, 1)
	e.food.Set(0, core.Point{X: 10, Y: 5})

	res := e.Tick()
	if !res.Ate {
		t.Fatal("Expected the snake to eat the food in front of it")
	}

	snap := e.Snapshot()
	if snap.Length() != 2 {
		t.Errorf("Length should be 2 after eating, got %d", snap.Length())
	}
	if snap.Score != ScoreUnit {
		t.Errorf("Score should be %d after eating, got %d", ScoreUnit, snap.Score)
	}

	food := snap.Food[0]
	if food == (core.Point{X: 10, Y: 5}) {
		t.Error("Eaten food should have been relocated")
	}
	if food.X < 2 || food.X >= 18 || food.Y < 2 || food.Y >= 8 {
		t.Errorf("Relocated food %v is outside the spawn area", food)
	}
	for _, p := range snap.Snake {
		if p == food {
			t.Errorf("Relocated food %v spawned under the snake", food)
		}
	}
}

func TestWallCollisionResets(t *testing.T) {
	e := newTestEngine(t, 1)
	e.food.Set(0, core.Point{X: 10, Y: 5})
	e.Tick() // score 10, head (10,5)
	e.food.Set(0, core.Point{X: 3, Y: 3})

	var res TickResult
	for i := 0; i < 20; i++ {
		res = e.Tick()
		if res.Died {
			break
		}
	}

	if !res.Died || res.Cause != CauseWall {
		t.Fatalf("Expected wall death, got %+v", res)
	}
	if res.Head != (core.Point{X: 20, Y: 5}) {
		t.Errorf("Expected death at column 20, got %v", res.Head)
	}

	snap := e.Snapshot()
	if snap.Lifecycle != GameOverMenu {
		t.Errorf("Expected lifecycle GameOverMenu, got %s", snap.Lifecycle)
	}
	if snap.Score != 0 {
		t.Errorf("Score should reset to 0, got %d", snap.Score)
	}
	if snap.ResultingScore != ScoreUnit {
		t.Errorf("ResultingScore should be %d, got %d", ScoreUnit, snap.ResultingScore)
	}
	if snap.Head() != (core.Point{X: 9, Y: 5}) || snap.Length() != 1 || snap.Direction != core.Right {
		t.Errorf("Expected fresh snake at (9, 5) moving right, got %v len %d dir %s",
			snap.Head(), snap.Length(), snap.Direction)
	}
	if snap.Games != 1 {
		t.Errorf("Expected 1 finished game, got %d", snap.Games)
	}
}

func TestSelfCollision(t *testing.T) {
	e := newTestEngine(t, 1)

	// Head at (5,5) with the body curling round so moving up re-enters (5,4).
	s := &Snake{ring: make([]core.Point, initialCapacity), direction: core.Up}
	body := []core.Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 4}, {X: 5, Y: 4}, {X: 4, Y: 4}}
	for i := len(body) - 1; i >= 0; i-- {
		s.Advance(body[i], true)
	}
	e.snake = s

	res := e.Tick()
	if !res.Died || res.Cause != CauseSelf {
		t.Errorf("Expected self collision, got %+v", res)
	}
}

func TestPauseFreezesState(t *testing.T) {
	e := newTestEngine(t, 1)
	e.Tick()
	e.SetLifecycle(Paused)

	before := e.Snapshot()
	for i := 0; i < 10; i++ {
		if res := e.Tick(); res.Advanced {
			t.Fatal("Tick should not advance while paused")
		}
	}
	after := e.Snapshot()

	if after.Head() != before.Head() {
		t.Errorf("Head moved while paused: %v -> %v", before.Head(), after.Head())
	}
	if after.Tick != before.Tick+10 {
		t.Errorf("Tick counter should keep running while paused, got %d -> %d", before.Tick, after.Tick)
	}
}

func TestGameOverMenuFreezesState(t *testing.T) {
	e := newTestEngine(t, 1)
	e.SetLifecycle(GameOverMenu)

	before := e.Snapshot()
	e.Tick()
	if e.Snapshot().Head() != before.Head() {
		t.Error("Head should not move in the game over menu")
	}
}

func TestMultipleFoodPieces(t *testing.T) {
	e := newTestEngine(t, 3)
	e.food.Set(1, core.Point{X: 10, Y: 5})
	others := []core.Point{e.food.pieces[0], e.food.pieces[2]}

	res := e.Tick()
	if !res.Ate {
		t.Fatal("Expected the snake to eat piece 1")
	}
	if e.food.pieces[0] != others[0] || e.food.pieces[2] != others[1] {
		t.Error("Only the eaten piece should move")
	}
	if e.food.pieces[1] == (core.Point{X: 10, Y: 5}) {
		t.Error("Eaten piece should have been relocated")
	}
}

func TestFoodSpawnAvoidsSnake(t *testing.T) {
	e := newTestEngine(t, 2)

	// Fill most of the spawn area with snake.
	s := NewSnake(e.board)
	for y := 2; y < 8; y++ {
		for x := 2; x < 18; x++ {
			if x == 17 && y == 7 {
				continue
			}
			s.Advance(core.Point{X: x, Y: y}, true)
		}
	}
	e.snake = s

	for i := 0; i < 50; i++ {
		e.placer.place(e.food, 0, e.snake)
		if e.snake.Occupies(e.food.pieces[0]) {
			t.Fatalf("Food spawned on snake at %v", e.food.pieces[0])
		}
	}
	if e.food.pieces[0] != (core.Point{X: 17, Y: 7}) {
		t.Errorf("Expected food in the only free cell (17, 7), got %v", e.food.pieces[0])
	}
}

func TestDeterminism(t *testing.T) {
	cfg := core.RuntimeConfig{
		Board: core.Board{Columns: 40, Rows: 20},
		Seed:  999,
	}
	g1, _ := NewEngine(cfg, Options{FoodCount: 1, AvoidSnake: true})
	g2, _ := NewEngine(cfg, Options{FoodCount: 1, AvoidSnake: true})
	c1, c2 := NewController(g1), NewController(g2)

	for i := 0; i < 100; i++ {
		switch i {
		case 5:
			c1.Handle(core.ActionDown)
			c2.Handle(core.ActionDown)
		case 9:
			c1.Handle(core.ActionLeft)
			c2.Handle(core.ActionLeft)
		case 30:
			c1.Handle(core.ActionResume)
			c2.Handle(core.ActionResume)
		}
		g1.Tick()
		g2.Tick()
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.DebugState() != s2.DebugState() {
		t.Errorf("Snapshots differ:\n%s\nvs\n%s", s1.DebugState(), s2.DebugState())
	}
}

func TestConcurrentControlAndTicks(t *testing.T) {
	e := newTestEngine(t, 1)
	c := NewController(e)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			e.Tick()
			e.Snapshot()
		}
	}()
	go func() {
		defer wg.Done()
		actions := []core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight, core.ActionResume}
		for i := 0; i < 500; i++ {
			c.Handle(actions[i%len(actions)])
		}
	}()
	wg.Wait()

	snap := e.Snapshot()
	if snap.Length() < 1 {
		t.Error("Snake should never be empty")
	}
}

func TestResetKeepsLifecycle(t *testing.T) {
	e := newTestEngine(t, 1)
	e.food.Set(0, core.Point{X: 10, Y: 5})
	e.Tick() // eats
	e.TogglePause()

	e.Reset()
	snap := e.Snapshot()

	if snap.Score != 0 || snap.Length() != 1 {
		t.Errorf("after Reset score=%d length=%d, expected 0 and 1", snap.Score, snap.Length())
	}
	if snap.Head() != (core.Point{X: 9, Y: 5}) {
		t.Errorf("after Reset head = %v, expected (9, 5)", snap.Head())
	}
	if snap.Lifecycle != Paused {
		t.Errorf("Reset changed lifecycle to %s", snap.Lifecycle)
	}
}
