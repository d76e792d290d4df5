package qkernel

import (
	"errors"
	"math"
	"slices"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSample(t *testing.T) {
	Convey("Given a prepared state", t, func() {
		q, err := Prepare(math.Pi/3, 0.4)
		So(err, ShouldBeNil)
		p0 := q.Probabilities()[0]

		Convey("Sampling should yield exactly shots outcomes of 0 or 1", func() {
			n := 0
			for outcome := range Sample(q, 250, NewRand(1)) {
				So(outcome == 0 || outcome == 1, ShouldBeTrue)
				n++
			}
			So(n, ShouldEqual, 250)
		})

		Convey("Empirical frequencies should converge at rate 1/√N", func() {
			for _, shots := range []int{1000, 10000, 100000} {
				counts, err := SampleCounts(q, shots, NewRand(uint64(shots)))
				So(err, ShouldBeNil)
				So(counts[0]+counts[1], ShouldEqual, shots)

				freq := float64(counts[0]) / float64(shots)
				So(math.Abs(freq-p0), ShouldBeLessThan, 5/math.Sqrt(float64(shots)))
			}
		})

		Convey("The same seed should reproduce the same sequence", func() {
			a := slices.Collect(Sample(q, 500, NewRand(99)))
			b := slices.Collect(Sample(q, 500, NewRand(99)))
			So(a, ShouldResemble, b)

			c := slices.Collect(Sample(q, 500, NewRand(100)))
			So(a, ShouldNotResemble, c)
		})

		Convey("The sequence should not be restartable", func() {
			seq := Sample(q, 10, NewRand(3))
			So(len(slices.Collect(seq)), ShouldEqual, 10)
			So(len(slices.Collect(seq)), ShouldEqual, 0)
		})

		Convey("Stopping early should draw no further outcomes", func() {
			rng := NewRand(5)
			for range Sample(q, 1000, rng) {
				break
			}

			next := rng.Float64()
			reference := NewRand(5)
			reference.Float64()
			So(next, ShouldEqual, reference.Float64())
		})

		Convey("A negative shot count should be a domain error", func() {
			_, err := SampleCounts(q, -1, NewRand(1))
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
			So(len(slices.Collect(Sample(q, -1, NewRand(1)))), ShouldEqual, 0)
		})
	})

	Convey("Given states that are not unit-norm", t, func() {
		Convey("They should be refused rather than renormalized", func() {
			for _, q := range []Qubit{{}, {Alpha: 3, Beta: 4}, {Alpha: 1, Beta: 1e-4}} {
				_, err := SampleCounts(q, 100, NewRand(1))
				So(errors.Is(err, ErrDomain), ShouldBeTrue)
				So(len(slices.Collect(Sample(q, 100, NewRand(1)))), ShouldEqual, 0)
			}
		})

		Convey("Non-finite amplitudes should be numeric errors", func() {
			_, err := SampleCounts(Qubit{Alpha: complex(math.NaN(), 0)}, 10, NewRand(1))
			So(errors.Is(err, ErrNumeric), ShouldBeTrue)
		})
	})

	Convey("Given basis states", t, func() {
		Convey("Outcomes should be deterministic", func() {
			counts, err := SampleCounts(One, 100, NewRand(8))
			So(err, ShouldBeNil)
			So(counts, ShouldResemble, [2]int{0, 100})
		})
	})
}
