package thermo_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/thermosim/internal/thermo"
)

var _ = Describe("Heating scenarios", func() {
	var (
		c   thermo.Constants
		cfg thermo.Config
	)

	BeforeEach(func() {
		c = thermo.DefaultConstants()
		cfg = thermo.DefaultConfig()
		// tall surface so particles stay on screen between one-second steps
		cfg.Height = 1e6
	})

	newSim := func() *thermo.Simulator {
		sim, err := thermo.New(c, cfg, rand.New(rand.NewSource(2024)))
		Expect(err).NotTo(HaveOccurred())
		return sim
	}

	Context("starting at ambient with the heater held", func() {
		It("crosses the bubble threshold within three one-second ticks", func() {
			cfg.MaxStep = 1
			cfg.InitialTemperature = 20
			sim := newSim()
			sim.SetHeating(true)

			// 0.35 per frame at 60 frames per second is 21 degrees per second
			crossedAt := -1
			for tick := 1; tick <= 10; tick++ {
				f := sim.Advance(1)
				if f.Temperature <= c.BubbleThreshold {
					Expect(f.BubbleCount).To(BeZero())
					continue
				}
				if crossedAt < 0 {
					crossedAt = tick
				}
			}
			Expect(crossedAt).To(Equal(3))
		})

		It("spawns bubbles only once the water is past the threshold", func() {
			cfg.InitialTemperature = 20
			sim := newSim()
			sim.SetHeating(true)

			sawBubbles := false
			for i := 0; i < 60*10; i++ {
				f := sim.Advance(1.0 / 60)
				if f.Temperature <= c.BubbleThreshold {
					Expect(f.BubbleCount).To(BeZero())
				}
				if f.BubbleCount > 0 {
					sawBubbles = true
				}
			}
			Expect(sawBubbles).To(BeTrue())
		})
	})

	Context("starting at the boiling point with the heater held", func() {
		var frames []thermo.Frame

		BeforeEach(func() {
			cfg.InitialTemperature = 100
			sim := newSim()
			sim.SetHeating(true)

			frames = frames[:0]
			for i := 0; i < 60*3; i++ {
				frames = append(frames, sim.Advance(1.0/60))
			}
		})

		It("starts producing steam", func() {
			spawned := false
			for _, f := range frames {
				Expect(f.Temperature).To(BeNumerically(">=", c.BoilingPoint))
				if f.SteamCount > 0 {
					spawned = true
				}
			}
			Expect(spawned).To(BeTrue())
		})

		It("fades the water while the temperature climbs toward the ceiling", func() {
			for i := 1; i < len(frames); i++ {
				if frames[i].Temperature >= c.MaxTemp {
					break
				}
				Expect(frames[i].Visual.LiquidOpacity).To(BeNumerically("<", frames[i-1].Visual.LiquidOpacity))
			}
			Expect(frames[len(frames)-1].Visual.Regime).To(Equal(thermo.Boiling))
		})
	})

	Context("left alone at ambient", func() {
		It("never moves", func() {
			cfg.InitialTemperature = c.Ambient
			sim := newSim()

			for i := 0; i < 1000; i++ {
				Expect(sim.Advance(1.0 / 60).Temperature).To(Equal(c.Ambient))
			}
			Expect(sim.State().Particles()).To(BeZero())
		})
	})

	Context("cooling from room temperature", func() {
		It("freezes and raises the freeze warning", func() {
			cfg.InitialTemperature = 20
			sim := newSim()
			sim.SetCooling(true)

			var last thermo.Frame
			for i := 0; i < 60*5; i++ {
				last = sim.Advance(1.0 / 60)
			}
			Expect(last.Temperature).To(Equal(c.MinTemp))
			Expect(last.Visual.Regime).To(Equal(thermo.Frozen))
			Expect(last.FreezeWarning).To(BeTrue())
			Expect(last.BoilWarning).To(BeFalse())
		})
	})
})
