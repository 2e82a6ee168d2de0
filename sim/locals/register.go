package locals

import (
	"strconv"

	"github.com/dynamo-sim/dynamo/sim"
)

func init() {
	sim.LocalFactories["Wall"] = func(params map[string]string) sim.Local {
		return NewWall(
			params["Name"],
			sim.NewVector(mustFloat(params["PointX"]), mustFloat(params["PointY"]), mustFloat(params["PointZ"])),
			sim.NewVector(mustFloat(params["NormalX"]), mustFloat(params["NormalY"]), mustFloat(params["NormalZ"])),
			mustFloat(params["Elasticity"]),
		)
	}
}

func mustFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic("locals: bad numeric XML attribute " + strconv.Quote(s))
	}
	return v
}
