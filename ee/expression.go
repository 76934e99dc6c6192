package ee

import (
	"encoding/json"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
)

// Expression is the serialized form of a computation, a graph of function
// invocations evaluated server side. Values maps node keys to their
// definition and Result names the node holding the final value.
type Expression struct {
	Values map[string]ValueNode `json:"values"`
	Result string               `json:"result"`
}

// ValueNode is one node of a computation graph: a constant, a function
// invocation, an array of nodes or a reference to another entry of the
// enclosing Expression. Exactly one field is set.
type ValueNode struct {
	Constant  interface{}
	Function  *Invocation
	Array     []ValueNode
	Reference string
}

// Invocation names a server side algorithm and binds its arguments.
type Invocation struct {
	FunctionName string               `json:"functionName"`
	Arguments    map[string]ValueNode `json:"arguments"`
}

// Const returns a constant node.
func Const(v interface{}) ValueNode {
	return ValueNode{Constant: v}
}

// Invoke returns a function invocation node.
func Invoke(name string, args map[string]ValueNode) ValueNode {
	return ValueNode{Function: &Invocation{FunctionName: name, Arguments: args}}
}

// geometryValue encodes a geometry as a GeoJSON constant.
func geometryValue(g geom.Geometry) ValueNode {
	return ValueNode{Constant: geojson.Geometry{Geometry: g}}
}

type arrayValue struct {
	Values []ValueNode `json:"values"`
}

func (v ValueNode) MarshalJSON() ([]byte, error) {
	switch {
	case v.Function != nil:
		return json.Marshal(struct {
			Function *Invocation `json:"functionInvocationValue"`
		}{v.Function})
	case v.Array != nil:
		return json.Marshal(struct {
			Array arrayValue `json:"arrayValue"`
		}{arrayValue{v.Array}})
	case v.Reference != "":
		return json.Marshal(struct {
			Reference string `json:"valueReference"`
		}{v.Reference})
	default:
		return json.Marshal(struct {
			Constant interface{} `json:"constantValue"`
		}{v.Constant})
	}
}

func (v *ValueNode) UnmarshalJSON(b []byte) error {
	aux := struct {
		Function  *Invocation     `json:"functionInvocationValue"`
		Array     *arrayValue     `json:"arrayValue"`
		Reference string          `json:"valueReference"`
		Constant  json.RawMessage `json:"constantValue"`
	}{}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	switch {
	case aux.Function != nil:
		v.Function = aux.Function
	case aux.Array != nil:
		v.Array = aux.Array.Values
	case aux.Reference != "":
		v.Reference = aux.Reference
	default:
		return json.Unmarshal(aux.Constant, &v.Constant)
	}
	return nil
}
