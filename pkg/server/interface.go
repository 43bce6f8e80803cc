/*
Package server implements msgpack IPC for the fill engine.

The server reads structured requests from stdin and writes responses
to stdout, in binary msgpack framing. Every request carries an ID the
response echoes back, so an editor frontend can correlate answers to
the keystroke that asked.

A suggestion request looks like:

	{"id": "req_001", "cmd": "suggest", "p": "P_A_O", "l": 24}

and comes back ranked by score:

	{"id": "req_001", "s": [{"w": "PIANO", "d": "piano", "sc": 90}], "c": 1, "t": 0}

The browse command drives the answer-browser panel: it lists corpus
words by prefix instead of by pattern, reusing the suggestion reply:

	{"id": "req_002", "cmd": "browse", "pre": "PIA", "lim": 50}

Grid-based commands (crossings, fillability, slots, validate) ship the
grid inline as rows of cells. Crossing results distinguish a concrete
remaining-fill count from the unconstrained case: the count field is
absent, and "u" is set, for crossings nobody has started. A zero count
always means the placement is impossible.
*/
package server

// Commands understood by the server.
const (
	CmdSuggest     = "suggest"
	CmdBrowse      = "browse"
	CmdCrossings   = "crossings"
	CmdFillability = "fillability"
	CmdSlots       = "slots"
	CmdValidate    = "validate"
	CmdHealth      = "health"
)

// WireCell is one grid square on the wire.
type WireCell struct {
	Black  bool   `msgpack:"b,omitempty"`
	Letter string `msgpack:"l,omitempty"`
}

// Request is the single envelope for all commands; unused fields stay
// empty for a given command.
type Request struct {
	ID        string       `msgpack:"id"`
	Command   string       `msgpack:"cmd"`
	Pattern   string       `msgpack:"p,omitempty"`
	Prefix    string       `msgpack:"pre,omitempty"`
	Grid      [][]WireCell `msgpack:"g,omitempty"`
	Row       int          `msgpack:"row,omitempty"`
	Col       int          `msgpack:"col,omitempty"`
	Direction string       `msgpack:"dir,omitempty"`
	Limit     int          `msgpack:"lim,omitempty"`
	Symmetry  bool         `msgpack:"sym,omitempty"`
}

// WireSuggestion is one ranked pattern match.
type WireSuggestion struct {
	Word    string `msgpack:"w"`
	Display string `msgpack:"d,omitempty"`
	Score   int    `msgpack:"sc"`
}

// SuggestResponse answers a suggest command.
type SuggestResponse struct {
	ID          string           `msgpack:"id"`
	Suggestions []WireSuggestion `msgpack:"s"`
	Count       int              `msgpack:"c"`
	TimeTaken   int64            `msgpack:"t"`
}

// WireCrossing is the per-intersection breakdown of one candidate.
type WireCrossing struct {
	Offset        int    `msgpack:"o"`
	Direction     string `msgpack:"dir"`
	Length        int    `msgpack:"len"`
	Count         *int   `msgpack:"n,omitempty"`
	Unconstrained bool   `msgpack:"u,omitempty"`
}

// WireCandidate is one crossing-scored candidate.
type WireCandidate struct {
	Word          string         `msgpack:"w"`
	Display       string         `msgpack:"d,omitempty"`
	Score         int            `msgpack:"sc"`
	Crossing      *int           `msgpack:"x,omitempty"`
	Unconstrained bool           `msgpack:"u,omitempty"`
	Unfillable    bool           `msgpack:"dead,omitempty"`
	Severity      string         `msgpack:"sev"`
	Details       []WireCrossing `msgpack:"det,omitempty"`
}

// CrossingsResponse answers a crossings command.
type CrossingsResponse struct {
	ID         string          `msgpack:"id"`
	SlotNumber int             `msgpack:"num,omitempty"`
	Candidates []WireCandidate `msgpack:"cands"`
	Count      int             `msgpack:"c"`
	TimeTaken  int64           `msgpack:"t"`
}

// WireSlot describes one extracted slot.
type WireSlot struct {
	Number    int    `msgpack:"num"`
	Row       int    `msgpack:"row"`
	Col       int    `msgpack:"col"`
	Length    int    `msgpack:"len"`
	Direction string `msgpack:"dir"`
	Pattern   string `msgpack:"p"`
}

// SlotsResponse answers a slots command.
type SlotsResponse struct {
	ID    string     `msgpack:"id"`
	Slots []WireSlot `msgpack:"slots"`
}

// WireSlotFill is one slot's fillability verdict.
type WireSlotFill struct {
	WireSlot
	Count    int    `msgpack:"n"`
	Complete bool   `msgpack:"done,omitempty"`
	Severity string `msgpack:"sev"`
}

// FillabilityResponse answers a fillability command.
type FillabilityResponse struct {
	ID        string         `msgpack:"id"`
	Slots     []WireSlotFill `msgpack:"slots"`
	Summary   map[string]int `msgpack:"sum"`
	TimeTaken int64          `msgpack:"t"`
}

// WireWarning is one validation warning.
type WireWarning struct {
	Type    string   `msgpack:"type"`
	Message string   `msgpack:"msg"`
	Cells   [][2]int `msgpack:"cells,omitempty"`
}

// ValidateResponse answers a validate command.
type ValidateResponse struct {
	ID       string        `msgpack:"id"`
	Valid    bool          `msgpack:"valid"`
	Warnings []WireWarning `msgpack:"warnings,omitempty"`
}

// StatusResponse answers health and signals readiness at startup.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
	Words  int    `msgpack:"words,omitempty"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
