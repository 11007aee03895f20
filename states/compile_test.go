package states

import (
	"testing"

	"github.com/justtaldevelops/blockstate/definition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDefinition exercises field-less blocks, repeated domains and several
// mixed-radix layouts. Sizes: air 1, stone 1, acacia_button 24, trapdoor 32,
// brewing_stand 8.
const testDefinition = `
Properties => {
    "powered" => bool,
    "waterlogged" => bool,
    "has_bottle" => bool,
    "facing" => Facing { North, South, West, East },
    "face" => Face { Floor, Wall, Ceiling },
    "half" => Half { Top, Bottom },
},
Blocks => {
    air => BlockBehavior::default(), {},
    stone => BlockBehavior::default(), {},
    acacia_button => BlockBehavior::default(), {
        face: Face::Wall,
        facing: Facing::North,
        powered: false,
    },
    trapdoor => BlockBehavior::default(), {
        facing: Facing::North,
        half: Half::Bottom,
        powered: false,
        waterlogged: false,
    },
    brewing_stand => BlockBehavior::default(), {
        has_bottle: false,
        has_bottle: false,
        has_bottle: false,
    },
}`

func compile(t *testing.T, src string) *Registry {
	t.Helper()
	def, err := definition.Parse([]byte(src))
	require.NoError(t, err)
	reg, err := Compile(def)
	require.NoError(t, err)
	return reg
}

func TestBooleanPolarity(t *testing.T) {
	// Ordinal 0 is true and ordinal 1 is false. This polarity is a fixed
	// contract inherited from the original definition sets.
	assert.Equal(t, uint32(2), Boolean.Size())
	v, ok := Boolean.Variant(0)
	require.True(t, ok)
	assert.Equal(t, "true", v)
	v, ok = Boolean.Variant(1)
	require.True(t, ok)
	assert.Equal(t, "false", v)
	ord, ok := Boolean.Ordinal("true")
	require.True(t, ok)
	assert.Equal(t, uint32(0), ord)
}

func TestDomainOrdinals(t *testing.T) {
	reg := compile(t, testDefinition)
	facing, ok := reg.Property("Facing")
	require.True(t, ok)
	assert.Equal(t, "facing", facing.Label())
	assert.Equal(t, uint32(4), facing.Size())
	assert.Equal(t, []string{"North", "South", "West", "East"}, facing.Variants())
	for i, variant := range facing.Variants() {
		ord, ok := facing.Ordinal(variant)
		require.True(t, ok)
		assert.Equal(t, uint32(i), ord)
	}
	_, ok = facing.Variant(4)
	assert.False(t, ok)
	_, ok = reg.Property("Axis")
	assert.False(t, ok)
}

// The grass_block scenario: a single boolean field yields a range of two
// ids, with true first and the false default second.
func TestGrassBlock(t *testing.T) {
	reg := compile(t, `
Properties => { "snowy" => bool, },
Blocks => { grass_block => BlockBehavior::default(), { snowy: false, }, }`)

	grass, ok := reg.Block("grass_block")
	require.True(t, ok)
	first, last := grass.Range()
	assert.Equal(t, StateID(0), first)
	assert.Equal(t, StateID(1), last)
	assert.Equal(t, uint32(2), grass.Size())
	assert.Equal(t, first+1, grass.DefaultState())

	snowy, err := reg.FromStateID(first)
	require.NoError(t, err)
	on, ok := snowy.Bool("snowy")
	require.True(t, ok)
	assert.True(t, on)

	bare, err := reg.FromStateID(first + 1)
	require.NoError(t, err)
	on, ok = bare.Bool("snowy")
	require.True(t, ok)
	assert.False(t, on)
}

// The acacia_button scenario: fields face (3), facing (4), powered (2) give
// a range of 24 ids with weights 8, 2 and 1 respectively.
func TestAcaciaButtonWeights(t *testing.T) {
	reg := compile(t, testDefinition)
	button, ok := reg.Block("acacia_button")
	require.True(t, ok)
	first, last := button.Range()
	assert.Equal(t, uint32(24), button.Size())

	face, _ := reg.Property("Face")
	facing, _ := reg.Property("Facing")
	for id := first; ; id++ {
		local := uint32(id - first)
		instance, err := reg.FromStateID(id)
		require.NoError(t, err)

		wantFace, _ := face.Variant((local / 8) % 3)
		wantFacing, _ := facing.Variant((local / 2) % 4)
		wantPowered := local%2 == 0

		v, ok := instance.Value("face")
		require.True(t, ok)
		assert.Equal(t, wantFace, v)
		v, ok = instance.Value("facing")
		require.True(t, ok)
		assert.Equal(t, wantFacing, v)
		powered, ok := instance.Bool("powered")
		require.True(t, ok)
		assert.Equal(t, wantPowered, powered)

		assert.Equal(t, id, instance.State())
		if id == last {
			break
		}
	}

	// Defaults face=Wall (ordinal 1), facing=North (0), powered=false (1)
	// give local offset 1*8 + 0*2 + 1*1.
	assert.Equal(t, first+9, button.DefaultState())
}

func TestDisambiguation(t *testing.T) {
	reg := compile(t, testDefinition)
	stand, ok := reg.Block("brewing_stand")
	require.True(t, ok)

	fields := stand.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "has_bottle_0", fields[0].Name)
	assert.Equal(t, "has_bottle_1", fields[1].Name)
	assert.Equal(t, "has_bottle_2", fields[2].Name)

	// Each slot is independently enumerable over the shared domain.
	instance := stand.DefaultInstance()
	base := instance.State()
	one, err := instance.With("has_bottle_1", "true")
	require.NoError(t, err)
	assert.Equal(t, base-2, one.State())
	on, ok := one.Bool("has_bottle_1")
	require.True(t, ok)
	assert.True(t, on)
	off, ok := one.Bool("has_bottle_0")
	require.True(t, ok)
	assert.False(t, off)
}

// A repeated enumerated domain is disambiguated the same way.
func TestDisambiguationEnum(t *testing.T) {
	reg := compile(t, `
Properties => { "facing" => Facing { North, South, West, East }, },
Blocks => {
    tube => BlockBehavior::default(), {
        facing: Facing::North,
        facing: Facing::South,
    },
}`)
	tube, ok := reg.Block("tube")
	require.True(t, ok)
	fields := tube.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "facing_0", fields[0].Name)
	assert.Equal(t, "facing_1", fields[1].Name)
	assert.Equal(t, uint32(16), tube.Size())

	instance := tube.DefaultInstance()
	v, ok := instance.Value("facing_0")
	require.True(t, ok)
	assert.Equal(t, "North", v)
	v, ok = instance.Value("facing_1")
	require.True(t, ok)
	assert.Equal(t, "South", v)
}

func TestCoverage(t *testing.T) {
	reg := compile(t, testDefinition)
	blocks := reg.Blocks()
	require.Len(t, blocks, 5)

	first, _ := blocks[0].Range()
	assert.Equal(t, StateID(0), first)
	for i := 0; i < len(blocks)-1; i++ {
		_, last := blocks[i].Range()
		next, _ := blocks[i+1].Range()
		assert.Equal(t, last+1, next, "range of %s must end where %s begins", blocks[i].ID(), blocks[i+1].ID())
	}
	_, last := blocks[len(blocks)-1].Range()
	assert.Equal(t, reg.MaxState(), last)
	assert.Equal(t, StateID(65), reg.MaxState())
}

func TestBijection(t *testing.T) {
	reg := compile(t, testDefinition)
	for id := StateID(0); ; id++ {
		instance, err := reg.FromStateID(id)
		require.NoError(t, err)
		require.Equal(t, id, instance.State())
		if id == reg.MaxState() {
			break
		}
	}
}

func TestDefaultCorrectness(t *testing.T) {
	reg := compile(t, testDefinition)
	for _, block := range reg.Blocks() {
		instance, err := reg.FromStateID(block.DefaultState())
		require.NoError(t, err)
		for _, field := range block.Fields() {
			want, _ := field.Domain.Variant(field.Default)
			got, ok := instance.Value(field.Name)
			require.True(t, ok)
			assert.Equal(t, want, got, "default of %s.%s", block.ID(), field.Name)
		}
		assert.True(t, instance.Equal(block.DefaultInstance()))
	}
}

func TestFieldlessBlock(t *testing.T) {
	reg := compile(t, testDefinition)
	air, ok := reg.Block("air")
	require.True(t, ok)
	first, last := air.Range()
	assert.Equal(t, first, last)
	assert.Equal(t, uint32(1), air.Size())
	assert.Equal(t, first, air.DefaultState())
	assert.Equal(t, first, air.DefaultInstance().State())
}

func TestFromStateIDOutOfRange(t *testing.T) {
	reg := compile(t, testDefinition)
	_, err := reg.FromStateID(reg.MaxState() + 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid state id")
}

func TestInstanceWith(t *testing.T) {
	reg := compile(t, testDefinition)
	button, _ := reg.Block("acacia_button")
	instance := button.DefaultInstance()

	pressed, err := instance.With("powered", "true")
	require.NoError(t, err)
	assert.Equal(t, instance.State()-1, pressed.State())
	// The original instance is untouched.
	powered, _ := instance.Bool("powered")
	assert.False(t, powered)

	_, err = instance.With("powered", "North")
	require.Error(t, err)
	_, err = instance.With("missing", "true")
	require.Error(t, err)
}

func TestInstanceString(t *testing.T) {
	reg := compile(t, testDefinition)
	air, _ := reg.Block("air")
	assert.Equal(t, "air", air.DefaultInstance().String())
	button, _ := reg.Block("acacia_button")
	assert.Equal(t, "acacia_button[face=Wall, facing=North, powered=false]", button.DefaultInstance().String())
}

func TestBehaviorPassthrough(t *testing.T) {
	reg := compile(t, `
Properties => {},
Blocks => { stone => BlockBehavior::new().strength(1.5), {}, }`)
	stone, ok := reg.Block("stone")
	require.True(t, ok)
	assert.Equal(t, "stone", stone.ID())
	assert.Equal(t, Behavior("BlockBehavior::new().strength(1.5)"), stone.Behavior())
	assert.Equal(t, stone.Behavior(), stone.DefaultInstance().Behavior())
}

func TestCompileErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		src  string
		want string
	}{
		"duplicate variant": {
			src:  `Properties => { "axis" => Axis { X, X }, }, Blocks => { a => B::default(), {} }`,
			want: "duplicate variant",
		},
		"duplicate domain": {
			src:  `Properties => { "axis" => Axis { X }, "axis2" => Axis { Y }, }, Blocks => { a => B::default(), {} }`,
			want: "declared twice",
		},
		"unknown domain": {
			src:  `Properties => {}, Blocks => { a => B::default(), { facing: Facing::North } }`,
			want: "property domain Facing not found",
		},
		"invalid default": {
			src:  `Properties => { "axis" => Axis { X, Y, Z }, }, Blocks => { a => B::default(), { axis: Axis::W } }`,
			want: "W is not a variant of Axis",
		},
		"duplicate block": {
			src:  `Properties => {}, Blocks => { a => B::default(), {}, a => B::default(), {} }`,
			want: "declared twice",
		},
		"no blocks": {
			src:  `Properties => {}, Blocks => {}`,
			want: "no blocks",
		},
	} {
		t.Run(name, func(t *testing.T) {
			def, err := definition.Parse([]byte(tc.src))
			require.NoError(t, err)
			_, err = Compile(def)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
