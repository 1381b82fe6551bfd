package integrators

import (
	"github.com/san-kum/mdsim/internal/dynamo"
)

// VelocityVerlet advances a particle State with a single force pass per
// step. The force computed at the start of step n closes the velocity
// update of step n-1 and opens the one of step n:
//
//	F = F(x_n)
//	v += F/m dt/2   (skipped at step 0, the thermalized v is already v_0)
//	Ekin = sum m|v|^2/2
//	v += F/m dt/2
//	x  = wrap(x + v dt)
type VelocityVerlet struct {
	eval    dynamo.ForceEvaluator
	coupler dynamo.Coupler
}

func NewVelocityVerlet(eval dynamo.ForceEvaluator) *VelocityVerlet {
	return &VelocityVerlet{eval: eval}
}

// SetCoupler installs a temperature-coupling hook; nil removes it.
func (vv *VelocityVerlet) SetCoupler(c dynamo.Coupler) { vv.coupler = c }

func (vv *VelocityVerlet) Step(s *dynamo.State) (dynamo.StepEnergy, error) {
	epot, err := vv.eval.Evaluate(s)
	if err != nil {
		return dynamo.StepEnergy{}, err
	}

	halfDt := 0.5 * s.Dt
	kick := halfDt / s.Mass
	ekin := 0.0

	for i := range s.Pos {
		v := s.Vel[i]
		f := s.Force[i]

		if s.Step > 0 {
			v.X += f.X * kick
			v.Y += f.Y * kick
		}

		if vv.coupler != nil {
			vv.coupler.Couple(i, &v, s)
		}

		ekin += 0.5 * s.Mass * (v.X*v.X + v.Y*v.Y)

		v.X += f.X * kick
		v.Y += f.Y * kick
		s.Vel[i] = v

		p := s.Pos[i]
		p.X += v.X * s.Dt
		p.Y += v.Y * s.Dt
		s.Pos[i] = s.Box.Wrap(p)
	}

	s.Step++

	if !s.IsValid() {
		return dynamo.StepEnergy{Kinetic: ekin, Potential: epot}, &dynamo.SimulationError{
			Step:    s.Step,
			Time:    s.Time(),
			Wrapped: dynamo.ErrUnstable,
		}
	}

	return dynamo.StepEnergy{Kinetic: ekin, Potential: epot}, nil
}
