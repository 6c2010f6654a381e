package ast

import "github.com/twoentartian/tydi-lang-2-sub000/lang/interfaces"

// CodeLocation re-exports interfaces.CodeLocation so every ast node can
// carry a source span without lang/ast importing lang/interfaces in every
// single file that needs one.
type CodeLocation = interfaces.CodeLocation
