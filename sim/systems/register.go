package systems

import (
	"math/rand"
	"strconv"

	"github.com/dynamo-sim/dynamo/sim"
)

func init() {
	sim.SystemFactories["Andersen"] = func(params map[string]string) sim.System {
		seed, _ := strconv.ParseInt(params["Seed"], 10, 64)
		rng := rand.New(rand.NewSource(seed))
		return NewThermostat(
			params["Name"],
			mustFloat(params, "Temperature", 1.0),
			mustFloat(params, "CollisionRate", 1.0),
			params["AutoTune"] == "true",
			mustFloat(params, "SetPoint", 0.05),
			uint64(mustFloat(params, "SetFrequency", 100)),
			rng,
		)
	}
	sim.SystemFactories["Ticker"] = func(params map[string]string) sim.System {
		return NewTicker(params["Name"], mustFloat(params, "Period", 1.0), nil)
	}
}

func mustFloat(params map[string]string, key string, def float64) float64 {
	s, ok := params[key]
	if !ok || s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic("systems: bad numeric XML attribute " + strconv.Quote(key))
	}
	return v
}
