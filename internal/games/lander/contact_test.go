package lander

import (
	"testing"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/physics"
)

type padMap map[physics.BodyID]float64

func (m padMap) PadMultiplier(id physics.BodyID) (float64, bool) {
	v, ok := m[id]
	return v, ok
}

type contactFixture struct {
	w       *fakeWorld
	p       *Player
	ground  physics.BodyID
	ground2 physics.BodyID
	pad     physics.BodyID
	pads    padMap
}

func newContactFixture() *contactFixture {
	cfg := config.DefaultLanderConfig()
	w := newFakeWorld()
	p := newPlayer(cfg.Flight)
	p.Body = w.SpawnPlayer(physics.BodySpec{Mass: p.Mass})
	f := &contactFixture{
		w:       w,
		p:       p,
		ground:  w.SpawnTerrain(nil, 0),
		ground2: w.SpawnTerrain(nil, 0),
		pad:     w.SpawnPad(core.V2(0, 0), 64, 16),
	}
	f.pads = padMap{f.pad: 3}
	return f
}

func (f *contactFixture) classify(c ContactClassifier) ContactOutcome {
	f.w.Step(1.0 / 60)
	return c.Classify(f.p, f.w.Drain(), f.w, f.pads)
}

func classifier(mode string, crash float64) ContactClassifier {
	return NewContactClassifier(
		config.PhysicsConfig{GroundedMode: mode},
		config.LandingConfig{CrashImpulse: crash},
	)
}

func TestClassifyGroundedFlag(t *testing.T) {
	f := newContactFixture()
	c := classifier(config.GroundedFlag, 40)

	f.w.start(f.p.Body, f.ground)
	out := f.classify(c)
	if !f.p.Grounded || !out.Touchdown {
		t.Errorf("Grounded = %v, Touchdown = %v, expected both true", f.p.Grounded, out.Touchdown)
	}

	// A second body starting does not make it "more" grounded; one end clears it.
	f.w.start(f.ground2, f.p.Body)
	if out := f.classify(c); out.Touchdown {
		t.Error("Touchdown should only fire when leaving the air")
	}
	f.w.end(f.p.Body, f.ground)
	f.classify(c)
	if f.p.Grounded {
		t.Error("Grounded = true, expected any end to clear it in flag mode")
	}
}

func TestClassifyGroundedCounted(t *testing.T) {
	f := newContactFixture()
	c := classifier(config.GroundedCounted, 40)

	f.w.start(f.p.Body, f.ground)
	f.w.start(f.p.Body, f.ground2)
	f.classify(c)

	f.w.end(f.p.Body, f.ground)
	f.classify(c)
	if !f.p.Grounded {
		t.Error("Grounded = false, expected true while one contact remains")
	}

	f.w.end(f.p.Body, f.ground2)
	f.w.end(f.p.Body, f.ground2)
	f.classify(c)
	if f.p.Grounded || f.p.groundContacts != 0 {
		t.Errorf("Grounded = %v, contacts = %d, expected false and a counter saturated at 0",
			f.p.Grounded, f.p.groundContacts)
	}
}

func TestClassifyEndsBeforeStarts(t *testing.T) {
	f := newContactFixture()
	c := classifier(config.GroundedFlag, 40)

	f.w.start(f.p.Body, f.ground)
	f.classify(c)

	// Leaving one segment and landing on the next in the same tick stays grounded.
	f.w.start(f.p.Body, f.ground2)
	f.w.end(f.p.Body, f.ground)
	f.classify(c)
	if !f.p.Grounded {
		t.Error("Grounded = false, expected ends to be applied before starts")
	}
}

func TestClassifyPadMultiplier(t *testing.T) {
	f := newContactFixture()
	c := classifier(config.GroundedFlag, 40)

	f.w.start(f.pad, f.p.Body)
	f.classify(c)
	if f.p.ScoreMultiplier != 3 {
		t.Errorf("ScoreMultiplier = %v, expected 3", f.p.ScoreMultiplier)
	}
	if f.p.Grounded {
		t.Error("a pad sensor alone should not ground the player")
	}

	f.w.end(f.pad, f.p.Body)
	f.classify(c)
	if f.p.ScoreMultiplier != 1 {
		t.Errorf("ScoreMultiplier = %v, expected 1 after leaving the pad", f.p.ScoreMultiplier)
	}
}

func TestClassifyCrash(t *testing.T) {
	tests := []struct {
		name    string
		impulse float64
		crash   bool
	}{
		{"soft", 10, false},
		{"at threshold", 40, false},
		{"hard", 40.001, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newContactFixture()
			c := classifier(config.GroundedFlag, 40)
			f.w.impulse = tt.impulse

			f.w.start(f.p.Body, f.ground)
			out := f.classify(c)
			if out.Crash != tt.crash {
				t.Errorf("Crash = %v, expected %v", out.Crash, tt.crash)
			}
			if out.Impulse != tt.impulse {
				t.Errorf("Impulse = %v, expected %v", out.Impulse, tt.impulse)
			}
		})
	}
}

func TestClassifyCrashOnlyOnTerrainStart(t *testing.T) {
	f := newContactFixture()
	c := classifier(config.GroundedFlag, 40)
	f.w.impulse = 1000

	f.w.start(f.p.Body, f.pad)
	if out := f.classify(c); out.Crash {
		t.Error("pad contact should never crash")
	}
	f.w.end(f.p.Body, f.ground)
	if out := f.classify(c); out.Crash {
		t.Error("contact end should never crash")
	}
	if out := f.classify(c); out.Crash {
		t.Error("a tick without a terrain start should never crash")
	}
}

func TestClassifyIgnoresForeignPairs(t *testing.T) {
	f := newContactFixture()
	c := classifier(config.GroundedFlag, 0)
	f.w.impulse = 1000

	f.w.start(f.ground, f.ground2)
	f.w.start(f.pad, f.ground)
	out := f.classify(c)
	if out.Crash || out.Touchdown || f.p.Grounded || f.p.ScoreMultiplier != 1 {
		t.Errorf("Classify() = %+v, player = %+v, expected no effect", out, f.p.View())
	}
}
