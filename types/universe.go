package types

// Universe is the set of known class definitions,
// starting with a small built-in class library.
type Universe struct {
	Object       *ClassDef
	Serializable *ClassDef
	CharSequence *ClassDef
	Comparable   *ClassDef
	Number       *ClassDef
	String       *ClassDef
	Iterable     *ClassDef
	Collection   *ClassDef
	List         *ClassDef
	ArrayList    *ClassDef
	Map          *ClassDef

	wrappers map[Kind]*ClassDef
	defs     []*ClassDef
	byName   map[string]*ClassDef
}

// NewUniverse returns a new Universe containing the built-in classes.
func NewUniverse() *Universe {
	u := &Universe{
		wrappers: make(map[Kind]*ClassDef),
		byName:   make(map[string]*ClassDef),
	}
	obj := func(def *ClassDef) Type { return &Class{Def: def} }

	u.Object = u.Add(&ClassDef{Name: "Object"})
	u.Serializable = u.Add(&ClassDef{Name: "Serializable", Interface: true})
	u.CharSequence = u.Add(&ClassDef{Name: "CharSequence", Interface: true})

	t := &TypeParm{Name: "T", Declarator: "Comparable"}
	u.Comparable = u.Add(&ClassDef{Name: "Comparable", Parms: []*TypeParm{t}, Interface: true})
	comparable := func(def *ClassDef) Type {
		return &Class{Def: u.Comparable, Args: []Type{obj(def)}}
	}

	u.Number = u.Add(&ClassDef{
		Name:  "Number",
		Super: []Type{obj(u.Object), obj(u.Serializable)},
	})
	for _, w := range []struct {
		name  string
		kind  Kind
		super *ClassDef
	}{
		{"Boolean", Boolean, u.Object},
		{"Character", Char, u.Object},
		{"Byte", Byte, u.Number},
		{"Short", Short, u.Number},
		{"Integer", Int, u.Number},
		{"Long", Long, u.Number},
		{"Float", Float, u.Number},
		{"Double", Double, u.Number},
	} {
		def := &ClassDef{Name: w.name, Final: true, Boxes: w.kind}
		def.Super = []Type{obj(w.super), comparable(def)}
		if w.super == u.Object {
			def.Super = append(def.Super, obj(u.Serializable))
		}
		u.wrappers[w.kind] = u.Add(def)
	}
	u.String = u.Add(&ClassDef{Name: "String", Final: true})
	u.String.Super = []Type{obj(u.Object), obj(u.CharSequence), comparable(u.String), obj(u.Serializable)}

	t = &TypeParm{Name: "T", Declarator: "Iterable"}
	u.Iterable = u.Add(&ClassDef{Name: "Iterable", Parms: []*TypeParm{t}, Interface: true})

	e := &TypeParm{Name: "E", Declarator: "Collection"}
	u.Collection = u.Add(&ClassDef{
		Name:      "Collection",
		Parms:     []*TypeParm{e},
		Interface: true,
		Super:     []Type{&Class{Def: u.Iterable, Args: []Type{&Var{Parm: e}}}},
	})
	e = &TypeParm{Name: "E", Declarator: "List"}
	u.List = u.Add(&ClassDef{
		Name:      "List",
		Parms:     []*TypeParm{e},
		Interface: true,
		Super:     []Type{&Class{Def: u.Collection, Args: []Type{&Var{Parm: e}}}},
	})
	e = &TypeParm{Name: "E", Declarator: "ArrayList"}
	u.ArrayList = u.Add(&ClassDef{
		Name:  "ArrayList",
		Parms: []*TypeParm{e},
		Super: []Type{
			obj(u.Object),
			&Class{Def: u.List, Args: []Type{&Var{Parm: e}}},
			obj(u.Serializable),
		},
	})
	k := &TypeParm{Name: "K", Declarator: "Map"}
	v := &TypeParm{Name: "V", Declarator: "Map"}
	u.Map = u.Add(&ClassDef{Name: "Map", Parms: []*TypeParm{k, v}, Interface: true})
	return u
}

// Add adds a class definition to the Universe and returns it.
// A definition with the name of an existing one replaces it for lookup.
func (u *Universe) Add(def *ClassDef) *ClassDef {
	u.defs = append(u.defs, def)
	u.byName[def.Name] = def
	return def
}

// Lookup returns the class definition with the given name, or nil.
func (u *Universe) Lookup(name string) *ClassDef { return u.byName[name] }

// Defs returns all class definitions in the order that they were added.
func (u *Universe) Defs() []*ClassDef { return u.defs }

// ObjectType returns a reference to Object.
func (u *Universe) ObjectType() *Class { return &Class{Def: u.Object} }

// Box returns the wrapper class type of a primitive type,
// or nil if the primitive has no wrapper (void).
func (u *Universe) Box(p *Primitive) *Class {
	def, ok := u.wrappers[p.Kind]
	if !ok {
		return nil
	}
	return &Class{Def: def}
}

// Unbox returns the primitive type wrapped by a class type,
// or nil if the class is not a wrapper.
func (u *Universe) Unbox(c *Class) *Primitive {
	if c.Def.Boxes == 0 {
		return nil
	}
	return Prim(c.Def.Boxes)
}

// UpperBound returns the upper bound substitute of a type:
// the upper bound of a wildcard, or the type itself.
func (u *Universe) UpperBound(typ Type) Type {
	w, ok := typ.(*Wildcard)
	if !ok {
		return typ
	}
	switch len(w.Upper) {
	case 0:
		return u.ObjectType()
	case 1:
		return w.Upper[0]
	default:
		return &Compound{Types: w.Upper}
	}
}

// LowerBound returns the lower bound substitute of a type:
// the lower bound of a wildcard (Any if it has none), or the type itself.
func (u *Universe) LowerBound(typ Type) Type {
	w, ok := typ.(*Wildcard)
	if !ok {
		return typ
	}
	if w.Lower == nil {
		return &Any{}
	}
	return w.Lower
}

// ParmBound returns the declared upper bound of a type parameter.
func (u *Universe) ParmBound(p *TypeParm) Type {
	switch len(p.Bounds) {
	case 0:
		return u.ObjectType()
	case 1:
		return p.Bounds[0]
	default:
		return &Compound{Types: p.Bounds}
	}
}
