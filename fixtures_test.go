package wf

// Test fixtures registered once at package init, in the teacher's
// RegisterTypeFor[T]()-from-init convention.

type nested struct {
	AString string `wf:"1"`
	AnInt   int32  `wf:"2"`
}

type widget struct {
	AUint64   uint64   `wf:"1"`
	AInt32    int32    `wf:"2"`
	ASint32   int32    `wf:"3,zigzag"`
	ABool     bool     `wf:"4"`
	AnEnum    int32    `wf:"5"`
	ADouble   float64  `wf:"6"`
	AFloat    float32  `wf:"7"`
	ASfixed64 int64    `wf:"8,fixed"`
	AFixed32  uint32   `wf:"9,fixed"`
	AString   string   `wf:"10"`
	AView     []byte   `wf:"11"`
	Nested    *nested  `wf:"12"`
	NestedPtr *nested  `wf:"13"`
	OptFloat  *float32 `wf:"14"`
	OptNested *nested  `wf:"15"`
}

type repeatedFixture struct {
	Ints       []int64   `wf:"1"`
	Bools      []bool    `wf:"2"`
	Doubles    []float64 `wf:"3"`
	Floats     []float32 `wf:"4"`
	EmptyInts  []int64   `wf:"5"`
	Sints      []int32   `wf:"6,zigzag"`
	Fixeds     []uint32  `wf:"7,fixed"`
	Unpacked   []int64   `wf:"8,unpacked"`
	NestedList []*nested `wf:"9"`
}

type mapFixture struct {
	Tags   map[string]int32   `wf:"1"`
	Scores map[int32]*nested  `wf:"2"`
	Zigs   map[int32]int32    `wf:"3,keyzigzag,valzigzag"`
	Fx     map[uint32]uint32  `wf:"4,keyfixed,valfixed"`
}

type chainLink struct {
	Depth int32      `wf:"1"`
	Next  *chainLink `wf:"2"`
}

type widgetV1 struct {
	AnInt int32 `wf:"1"`
}

type widgetV2 struct {
	AnInt   int32  `wf:"1"`
	AString string `wf:"2"`
}

func init() {
	Register[nested]()
	Register[widget]()
	Register[repeatedFixture]()
	Register[mapFixture]()
	Register[chainLink]()
	Register[widgetV1]()
	Register[widgetV2]()
}
