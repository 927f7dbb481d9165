// Package cabi exposes the engine's node graph, selector engine and event
// subsystem through the opaque-handle C ABI described by the engine's
// external-interfaces surface. Every exported function takes and returns
// pointer-sized handles, fixed-width integers and UTF-8 NUL-free strings so
// it can be re-exported via cgo from a thin cmd/ shim without this package
// itself depending on cgo.
package cabi

// Node type constants, matching dom.NodeType numbering exactly.
const (
	NodeTypeElement              = 1
	NodeTypeAttribute            = 2
	NodeTypeText                 = 3
	NodeTypeCDATASection         = 4
	NodeTypeProcessingInstruction = 7
	NodeTypeComment              = 8
	NodeTypeDocument             = 9
	NodeTypeDocumentType         = 10
	NodeTypeDocumentFragment     = 11
	NodeTypeShadowRoot           = 12
)

// NodeFilter result and whatToShow bitmask constants.
const (
	FilterAccept = 1
	FilterReject = 2
	FilterSkip   = 3

	ShowAll                   uint32 = 0xFFFFFFFF
	ShowElement               uint32 = 0x1
	ShowText                  uint32 = 0x4
	ShowCDATASection          uint32 = 0x8
	ShowProcessingInstruction uint32 = 0x40
	ShowComment               uint32 = 0x80
	ShowDocument              uint32 = 0x100
	ShowDocumentType          uint32 = 0x200
	ShowDocumentFragment      uint32 = 0x400
)

// Range boundary-point comparison constants (Range.compareBoundaryPoints).
const (
	StartToStart = 0
	StartToEnd   = 1
	EndToEnd     = 2
	EndToStart   = 3
)

// ShadowRoot mode and slot assignment constants.
const (
	ShadowRootModeOpen   = 0
	ShadowRootModeClosed = 1

	SlotAssignmentNamed  = 0
	SlotAssignmentManual = 1
)

// Event phase constants.
const (
	EventPhaseNone      = 0
	EventPhaseCapturing = 1
	EventPhaseAtTarget  = 2
	EventPhaseBubbling  = 3
)

// DOM_ERROR_* codes, returned as the non-zero int32 from fallible calls.
const (
	ErrOK                    int32 = 0
	ErrHierarchyRequest      int32 = 1
	ErrNotFound              int32 = 2
	ErrInvalidCharacter      int32 = 3
	ErrNotSupported          int32 = 4
	ErrInvalidState          int32 = 5
	ErrIndexSize             int32 = 6
	ErrWrongDocument         int32 = 7
	ErrNamespace             int32 = 8
	ErrInUseAttribute        int32 = 9
	ErrSyntax                int32 = 10
	ErrQuotaExceeded         int32 = 11
	ErrInvalidModification   int32 = 12
	ErrUnknown               int32 = 127
)

// errorCodeByName maps DOMError.Name to its DOM_ERROR_* code.
var errorCodeByName = map[string]int32{
	"HierarchyRequestError":   ErrHierarchyRequest,
	"NotFoundError":           ErrNotFound,
	"InvalidCharacterError":   ErrInvalidCharacter,
	"NotSupportedError":       ErrNotSupported,
	"InvalidStateError":       ErrInvalidState,
	"IndexSizeError":          ErrIndexSize,
	"WrongDocumentError":      ErrWrongDocument,
	"NamespaceError":          ErrNamespace,
	"InUseAttributeError":     ErrInUseAttribute,
	"SyntaxError":             ErrSyntax,
	"QuotaExceededError":      ErrQuotaExceeded,
	"InvalidModificationError": ErrInvalidModification,
}
