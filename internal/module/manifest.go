package module

import "github.com/goccy/go-yaml"

// manifestFunction is the YAML-facing shape of a compiled function
// declaration: name and calling shape only, never bytecode.
type manifestFunction struct {
	Name       string `yaml:"name"`
	Arity      int    `yaml:"arity"`
	StackArity int    `yaml:"stackArity"`
	Returns    int    `yaml:"returns"`
}

// manifestCustomType is the YAML-facing shape of a registered custom type.
type manifestCustomType struct {
	ID   uint64 `yaml:"id"`
	Name string `yaml:"name"`
}

// manifest is a debug-only declarations dump of a Module: the public
// shape of its functions, native bindings, and custom types, without any
// bytecode or constant data. It is not Pulsar's on-disk module format;
// it exists purely so `pulsar disasm --manifest` has something readable
// to print.
type manifest struct {
	Functions     []manifestFunction `yaml:"functions"`
	NativeBindings []manifestFunction `yaml:"nativeBindings"`
	CustomTypes   []manifestCustomType `yaml:"customTypes"`
}

// DumpManifest renders the Module's declarations (not its bytecode) as
// YAML, for human inspection.
func (m *Module) DumpManifest() ([]byte, error) {
	man := manifest{}
	for _, def := range m.Functions {
		man.Functions = append(man.Functions, manifestFunction{
			Name:       def.Signature.Name,
			Arity:      def.Signature.Arity,
			StackArity: def.Signature.StackArity,
			Returns:    def.Signature.Returns,
		})
	}
	for _, nb := range m.natives {
		man.NativeBindings = append(man.NativeBindings, manifestFunction{
			Name:       nb.signature.Name,
			Arity:      nb.signature.Arity,
			StackArity: nb.signature.StackArity,
			Returns:    nb.signature.Returns,
		})
	}
	for _, ct := range m.CustomTypes {
		man.CustomTypes = append(man.CustomTypes, manifestCustomType{ID: ct.ID, Name: ct.Name})
	}
	return yaml.Marshal(man)
}
