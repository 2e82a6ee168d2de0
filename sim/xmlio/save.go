package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dynamo-sim/dynamo/sim"
	"github.com/dynamo-sim/dynamo/sim/bc"
	"github.com/dynamo-sim/dynamo/sim/cells"
	"github.com/dynamo-sim/dynamo/sim/globals"
	"github.com/dynamo-sim/dynamo/sim/interactions"
	"github.com/dynamo-sim/dynamo/sim/locals"
	"github.com/dynamo-sim/dynamo/sim/systems"
)

// Save serializes s as a <Simulation> document (spec.md §6), writing
// indented XML so the output is diffable and round-trips byte-identical
// modulo whitespace when re-loaded and re-saved.
func Save(w io.Writer, s *sim.Simulation) error {
	doc := document{
		Units: unitsXML{UnitLength: s.Units.UnitLength, UnitTime: s.Units.UnitTime, UnitMass: s.Units.UnitMass},
	}

	for i := range s.Store.Particles {
		p := &s.Store.Particles[i]
		pt := ptXML{
			ID: p.ID,
			P:  vectorXML{X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z},
			V:  vectorXML{X: p.Velocity.X, Y: p.Velocity.Y, Z: p.Velocity.Z},
		}
		if !p.IsDynamic() {
			pt.Static = "Static"
		}
		doc.Data.Pt = append(doc.Data.Pt, pt)
	}

	doc.Dynam.BC = saveBC(s.BC)

	for _, in := range s.Interactions {
		doc.Dynam.Interactions.Plugin = append(doc.Dynam.Interactions.Plugin, savePlugin(in))
	}
	for _, g := range s.Globals {
		doc.Dynam.Globals.Plugin = append(doc.Dynam.Globals.Plugin, savePlugin(g))
	}
	for _, l := range s.Locals {
		doc.Dynam.Locals.Plugin = append(doc.Dynam.Locals.Plugin, savePlugin(l))
	}
	for _, sy := range s.Systems {
		doc.Dynam.SystemEvents.Plugin = append(doc.Dynam.SystemEvents.Plugin, savePlugin(sy))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("xmlio: encode: %w", err)
	}
	return nil
}

func saveBC(b sim.BC) bcXML {
	switch v := b.(type) {
	case bc.Rectangular:
		return bcXML{Type: "Rectangular"}
	case bc.Periodic:
		return bcXML{Type: "Periodic", BoxX: v.Box.X, BoxY: v.Box.Y, BoxZ: v.Box.Z}
	case *bc.LeesEdwards:
		return bcXML{Type: "LeesEdwards", BoxX: v.Box.X, BoxY: v.Box.Y, BoxZ: v.Box.Z, ShearRate: v.ShearRate}
	default:
		return bcXML{Type: "Rectangular"}
	}
}

// namer is implemented by every capability interface; savePlugin uses it
// plus a type switch to recover the XML Type attribute and attributes a
// loader would need to reconstruct the plugin.
type namer interface{ Name() string }

func savePlugin(p namer) pluginXML {
	px := pluginXML{Name: p.Name()}
	switch v := p.(type) {
	case *interactions.HardSphere:
		px.Type = "HardSphere"
		px.Attrs = attrs(map[string]float64{"Diameter": v.Diameter, "Elasticity": v.Elasticity})
	case *interactions.SquareWell:
		px.Type = "SquareWell"
		px.Attrs = attrs(map[string]float64{
			"CoreDiameter": v.CoreDiameter, "Lambda": v.LambdaRatio,
			"WellDepth": v.WellDepth, "Elasticity": v.Elasticity,
		})
		pairs := v.CapturedPairs()
		sort.Slice(pairs, func(i, j int) bool {
			return pairs[i][0] < pairs[j][0] || (pairs[i][0] == pairs[j][0] && pairs[i][1] < pairs[j][1])
		})
		for _, pr := range pairs {
			px.Pairs = append(px.Pairs, pairXML{ID1: pr[0], ID2: pr[1], State: 1})
		}
	case *locals.Wall:
		px.Type = "Wall"
		px.Attrs = attrs(map[string]float64{
			"PointX": v.Point.X, "PointY": v.Point.Y, "PointZ": v.Point.Z,
			"NormalX": v.Normal.X, "NormalY": v.Normal.Y, "NormalZ": v.Normal.Z,
			"Elasticity": v.Elasticity,
		})
	case *globals.Sleep:
		px.Type = "Sleep"
		px.Attrs = attrs(map[string]float64{
			"Converge": v.Converge, "SleepV": v.WakeVel, "RetryDt": v.RetryDt,
			"GravityX": v.Gravity.X, "GravityY": v.Gravity.Y, "GravityZ": v.Gravity.Z,
		})
	case *cells.GCellsShearing:
		px.Type = "ShearingCells"
		px.Attrs = attrs(map[string]float64{"Overlink": float64(v.List.Overlink)})
	case *cells.GCells:
		px.Type = "Cells"
		px.Attrs = attrs(map[string]float64{"Overlink": float64(v.List.Overlink)})
	case *systems.Thermostat:
		px.Type = "Andersen"
		px.Attrs = attrs(map[string]float64{"Temperature": v.Temperature})
	case *systems.Ticker:
		px.Type = "Ticker"
		px.Attrs = attrs(map[string]float64{"Period": v.Period})
	default:
		px.Type = "Unknown"
	}
	return px
}

func attrs(values map[string]float64) []xml.Attr {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]xml.Attr, 0, len(values))
	for _, k := range keys {
		out = append(out, xml.Attr{Name: xml.Name{Local: k}, Value: strconv.FormatFloat(values[k], 'g', -1, 64)})
	}
	return out
}
