package globals

import (
	"math/rand"
	"strconv"

	"github.com/dynamo-sim/dynamo/sim"
)

func init() {
	sim.GlobalFactories["Sleep"] = func(params map[string]string) sim.Global {
		gravity := sim.NewVector(
			mustFloat(params, "GravityX", 0), mustFloat(params, "GravityY", 0), mustFloat(params, "GravityZ", -1),
		)
		return NewSleep(
			params["Name"], mustFloat(params, "Converge", 0.01), mustFloat(params, "SleepV", 0.1),
			mustFloat(params, "RetryDt", 0.5), gravity,
			rand.New(rand.NewSource(int64(mustFloat(params, "Seed", 0)))),
		)
	}
}

func mustFloat(params map[string]string, key string, def float64) float64 {
	s, ok := params[key]
	if !ok || s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic("globals: bad numeric XML attribute " + strconv.Quote(key))
	}
	return v
}
