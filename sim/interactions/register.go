package interactions

import (
	"strconv"

	"github.com/dynamo-sim/dynamo/sim"
)

func init() {
	sim.InteractionFactories["HardSphere"] = func(params map[string]string) sim.Interaction {
		return NewHardSphere(params["Name"], mustFloat(params["Diameter"]), mustFloat(params["Elasticity"]))
	}
	sim.InteractionFactories["SquareWell"] = func(params map[string]string) sim.Interaction {
		return NewSquareWell(params["Name"], mustFloat(params["CoreDiameter"]), mustFloat(params["Lambda"]),
			mustFloat(params["WellDepth"]), mustFloat(params["Elasticity"]))
	}
}

func mustFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic("interactions: bad numeric XML attribute " + strconv.Quote(s))
	}
	return v
}
