package diag

import "fmt"

// Code identifies a diagnostic's category. Ranges follow spec.md §7's
// error taxonomy: structural, naming, typing, recursion, endpoint/event,
// bounds, misuse.
type Code uint16

const (
	UnknownCode Code = 0

	// Structural — checked pre-resolution (SanityCheckPass.runPreResolution).
	StructMissingOutputEndpoint   Code = 1001
	StructMultipleRunFunctions    Code = 1002
	StructRunFunctionBadSignature Code = 1003
	StructUserInitBadSignature    Code = 1004
	StructRunFunctionMissing      Code = 1005

	// Naming — duplicate-name and signature checks.
	NameDuplicateInScope           Code = 2001
	NameDuplicateFunctionSignature Code = 2002
	NameUnresolvedSymbol           Code = 2003
	NameAmbiguousSymbol            Code = 2004
	NameIdentifierTooLong          Code = 2005

	// Typing — the type model, value coercion, aggregate initialization.
	TypeCannotSilentlyCast     Code = 3001
	TypeValueDoesNotFit        Code = 3002
	TypeCannotCastBetween      Code = 3003
	TypeAmbiguousCast          Code = 3004
	TypeNoMatchingCast         Code = 3005
	TypeWrongNumberOfElements  Code = 3006
	TypeVoidVariable           Code = 3007
	TypeTooBig                 Code = 3008
	TypeMultiDimensionalArray  Code = 3009
	TypeBadUnaryOperand        Code = 3010
	TypeConstStructMember      Code = 3011
	TypePreIncDecCollision     Code = 3012
	TypeNamespaceVarNotConst   Code = 3013
	TypeStateVarNotConstInit   Code = 3014

	// Recursion — struct and using-declaration self-reference, graph shape.
	RecursionSelfReferentialType   Code = 4001
	RecursionMutuallyRecursiveType Code = 4002
	RecursionRecursiveGraph        Code = 4003
	RecursionGraphCycle            Code = 4004

	// Endpoint / event.
	EventFunctionWrongArity          Code = 5001
	EventFunctionInvalidType         Code = 5002
	EventFunctionNoMatchingEndpoint  Code = 5003
	EventFunctionBadIndexType        Code = 5004

	// Bounds.
	BoundsDelayLineTooShort       Code = 6001
	BoundsDelayLineTooLong        Code = 6002
	BoundsArraySizeOutOfRange     Code = 6003
	BoundsComparisonAlwaysTrue    Code = 6004
	BoundsComparisonAlwaysFalse   Code = 6005
	BoundsInitializerListTooLong  Code = 6006

	// Misuse.
	MisuseReadFromOutputEndpoint       Code = 7001
	MisuseProcessorAsValue             Code = 7002
	MisuseProcessorAsType              Code = 7003
	MisuseUnresolvedAnnotationProperty Code = 7004
)

var codeNames = map[Code]string{
	UnknownCode: "unknown",

	StructMissingOutputEndpoint:   "missingOutputEndpoint",
	StructMultipleRunFunctions:    "multipleRunFunctions",
	StructRunFunctionBadSignature: "runFunctionBadSignature",
	StructUserInitBadSignature:    "userInitBadSignature",
	StructRunFunctionMissing:      "runFunctionMissing",

	NameDuplicateInScope:           "duplicateName",
	NameDuplicateFunctionSignature: "duplicateFunctionSignature",
	NameUnresolvedSymbol:           "unresolvedSymbol",
	NameAmbiguousSymbol:            "ambiguousSymbol",
	NameIdentifierTooLong:          "identifierTooLong",

	TypeCannotSilentlyCast:    "cannotSilentlyCast",
	TypeValueDoesNotFit:       "valueDoesNotFit",
	TypeCannotCastBetween:     "cannotCastBetween",
	TypeAmbiguousCast:         "ambiguousCast",
	TypeNoMatchingCast:        "noMatchingCast",
	TypeWrongNumberOfElements: "wrongNumberOfElements",
	TypeVoidVariable:          "voidVariable",
	TypeTooBig:                "typeTooBig",
	TypeMultiDimensionalArray: "multiDimensionalArrayNotImplemented",
	TypeBadUnaryOperand:       "badUnaryOperand",
	TypeConstStructMember:     "memberCannotBeConst",
	TypePreIncDecCollision:    "preIncDecCollision",
	TypeNamespaceVarNotConst:  "namespaceVariableMustBeConst",
	TypeStateVarNotConstInit:  "stateVariableInitializerMustBeConstant",

	RecursionSelfReferentialType:   "typeContainsItself",
	RecursionMutuallyRecursiveType: "typesReferToEachOther",
	RecursionRecursiveGraph:        "recursiveGraph",
	RecursionGraphCycle:            "graphCycle",

	EventFunctionWrongArity:         "eventFunctionWrongArity",
	EventFunctionInvalidType:        "eventFunctionInvalidType",
	EventFunctionNoMatchingEndpoint: "eventFunctionNoMatchingEndpoint",
	EventFunctionBadIndexType:       "eventFunctionBadIndexType",

	BoundsDelayLineTooShort:      "delayLineTooShort",
	BoundsDelayLineTooLong:       "delayLineTooLong",
	BoundsArraySizeOutOfRange:    "arraySizeOutOfRange",
	BoundsComparisonAlwaysTrue:   "comparisonAlwaysTrue",
	BoundsComparisonAlwaysFalse:  "comparisonAlwaysFalse",
	BoundsInitializerListTooLong: "initializerListTooLong",

	MisuseReadFromOutputEndpoint:       "cannotReadFromOutput",
	MisuseProcessorAsValue:             "cannotUseProcessorAsValue",
	MisuseProcessorAsType:              "cannotUseProcessorAsType",
	MisuseUnresolvedAnnotationProperty: "unresolvedAnnotationProperty",
}

// ID returns the diagnostic's stable machine-readable name, used in
// golden output and by tests that assert on "which error fired" without
// depending on message wording.
func (c Code) ID() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code%d", c)
}

func (c Code) String() string { return c.ID() }

// CodesByName inverts codeNames, letting a manifest's severity policy name
// diagnostics by their stable ID (internal/project) instead of the raw
// numeric Code.
func CodesByName() map[string]Code {
	out := make(map[string]Code, len(codeNames))
	for code, name := range codeNames {
		out[name] = code
	}
	return out
}
