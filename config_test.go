package qkernel

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := NewConfig()

		Convey("It should validate", func() {
			So(cfg.Validate(), ShouldBeNil)
			So(cfg.Platform, ShouldEqual, "Quantum Research Workbench")
			So(cfg.VQE.Iterations, ShouldEqual, 50)
			So(cfg.QAOA.Layers, ShouldEqual, 2)
		})
	})

	Convey("Given a YAML document", t, func() {
		Convey("Keys it sets should override the defaults and the rest should stay", func() {
			cfg, err := ParseConfig([]byte(`
norm_tolerance: 1e-10
vqe:
  iterations: 80
  shot_noise: true
qaoa:
  layers: 3
`))
			So(err, ShouldBeNil)
			So(cfg.NormTolerance, ShouldEqual, 1e-10)
			So(cfg.StateTolerance, ShouldEqual, 1e-9)
			So(cfg.VQE.Iterations, ShouldEqual, 80)
			So(cfg.VQE.ShotNoise, ShouldBeTrue)
			So(cfg.VQE.NoiseSigma, ShouldEqual, 0.02)
			So(cfg.QAOA.Layers, ShouldEqual, 3)
			So(cfg.QAOA.InitialStep, ShouldEqual, math.Pi/4)
		})

		Convey("An empty document should give the defaults", func() {
			cfg, err := ParseConfig(nil)
			So(err, ShouldBeNil)
			So(cfg, ShouldResemble, NewConfig())
		})

		Convey("Out-of-range values should be domain errors", func() {
			for _, doc := range []string{
				"norm_tolerance: 0",
				"state_tolerance: 0.5",
				"vqe: {iterations: 500}",
				"qaoa: {layers: 9}",
				"qaoa: {starts: 0}",
			} {
				_, err := ParseConfig([]byte(doc))
				So(errors.Is(err, ErrDomain), ShouldBeTrue)
			}
		})

		Convey("Malformed YAML should fail to parse", func() {
			_, err := ParseConfig([]byte("vqe: [unterminated"))
			So(err, ShouldNotBeNil)
			So(KindOf(err), ShouldBeNil)
		})
	})
}
