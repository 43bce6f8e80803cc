package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/crossforge/crossforge/internal/logger"
	"github.com/crossforge/crossforge/pkg/analyze"
	"github.com/crossforge/crossforge/pkg/config"
	"github.com/crossforge/crossforge/pkg/engine"
	"github.com/crossforge/crossforge/pkg/grid"
	"github.com/crossforge/crossforge/pkg/index"
)

// Server handles the IPC for grid analysis and suggestions.
type Server struct {
	engine  *engine.Engine
	config  *config.Config
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	logger  *log.Logger
}

// NewServer creates an analysis server using stdin/stdout for IPC.
func NewServer(e *engine.Engine, cfg *config.Config) *Server {
	return NewServerWithIO(e, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over custom streams.
func NewServerWithIO(e *engine.Engine, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:  e,
		config:  cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		logger:  logger.New("server"),
	}
}

// Start begins listening for IPC requests. It returns nil on EOF.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready", Words: s.engine.Snapshot().Corpus.Len()})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			continue
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Command {
	case CmdSuggest:
		s.handleSuggest(req)
	case CmdBrowse:
		s.handleBrowse(req)
	case CmdCrossings:
		s.handleCrossings(req)
	case CmdFillability:
		s.handleFillability(req)
	case CmdSlots:
		s.handleSlots(req)
	case CmdValidate:
		s.handleValidate(req)
	case CmdHealth:
		s.send(StatusResponse{ID: req.ID, Status: "ok", Words: s.engine.Snapshot().Corpus.Len()})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown command: %s", req.Command), 400)
	}
}

func (s *Server) handleSuggest(req Request) {
	if req.Pattern == "" {
		s.sendError(req.ID, "missing 'p' parameter", 400)
		return
	}
	p, err := index.Parse(req.Pattern)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	limit := s.clampLimit(req.Limit)
	start := time.Now()
	snap := s.engine.Snapshot()
	matches := snap.QueryPattern(p, limit)
	elapsed := time.Since(start)

	resp := SuggestResponse{
		ID:          req.ID,
		Suggestions: make([]WireSuggestion, len(matches)),
		Count:       snap.Count(p),
		TimeTaken:   elapsed.Milliseconds(),
	}
	for i, m := range matches {
		resp.Suggestions[i] = WireSuggestion{Word: m.Word, Display: m.Display, Score: m.Score}
	}
	s.send(resp)
}

func (s *Server) handleBrowse(req Request) {
	if req.Prefix == "" {
		s.sendError(req.ID, "missing 'pre' parameter", 400)
		return
	}

	limit := s.clampLimit(req.Limit)
	start := time.Now()
	matches := s.engine.Snapshot().Corpus.SearchPrefix(req.Prefix, 0)
	elapsed := time.Since(start)

	total := len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	resp := SuggestResponse{
		ID:          req.ID,
		Suggestions: make([]WireSuggestion, len(matches)),
		Count:       total,
		TimeTaken:   elapsed.Milliseconds(),
	}
	for i, m := range matches {
		resp.Suggestions[i] = WireSuggestion{Word: m.Word, Display: m.Display, Score: m.Score}
	}
	s.send(resp)
}

func (s *Server) handleCrossings(req Request) {
	g, err := s.decodeGrid(req.Grid)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	dir, err := grid.ParseDirection(req.Direction)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	target, _, ok := grid.SlotThrough(g, req.Row, req.Col, dir)
	if !ok {
		s.sendError(req.ID, fmt.Sprintf("no %s slot through (%d,%d)", dir, req.Row, req.Col), 400)
		return
	}

	limit := s.clampLimit(req.Limit)
	start := time.Now()
	snap := s.engine.Snapshot()
	candidates := snap.QueryPattern(target.Pattern, limit)
	results, err := snap.AnalyzeCrossings(g, target, candidates, limit)
	elapsed := time.Since(start)
	if err != nil {
		s.sendError(req.ID, err.Error(), 422)
		return
	}

	resp := CrossingsResponse{
		ID:         req.ID,
		SlotNumber: target.Number,
		Candidates: make([]WireCandidate, len(results)),
		Count:      len(results),
		TimeTaken:  elapsed.Milliseconds(),
	}
	for i, r := range results {
		resp.Candidates[i] = wireCandidate(r)
	}
	s.send(resp)
}

func (s *Server) handleFillability(req Request) {
	g, err := s.decodeGrid(req.Grid)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	start := time.Now()
	overview := s.engine.Snapshot().Fillability(g)
	elapsed := time.Since(start)

	resp := FillabilityResponse{
		ID:        req.ID,
		Slots:     make([]WireSlotFill, len(overview.Slots)),
		Summary:   make(map[string]int, len(overview.Summary)),
		TimeTaken: elapsed.Milliseconds(),
	}
	for i, sf := range overview.Slots {
		resp.Slots[i] = WireSlotFill{
			WireSlot: wireSlot(sf.Slot),
			Count:    sf.Count,
			Complete: sf.Complete,
			Severity: string(sf.Severity),
		}
	}
	for sev, n := range overview.Summary {
		resp.Summary[string(sev)] = n
	}
	s.send(resp)
}

func (s *Server) handleSlots(req Request) {
	g, err := s.decodeGrid(req.Grid)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	slots := grid.ExtractSlots(g)
	resp := SlotsResponse{ID: req.ID, Slots: make([]WireSlot, len(slots))}
	for i, sl := range slots {
		resp.Slots[i] = wireSlot(sl)
	}
	s.send(resp)
}

func (s *Server) handleValidate(req Request) {
	g, err := s.decodeGrid(req.Grid)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	report := grid.Validate(g, req.Symmetry)
	resp := ValidateResponse{ID: req.ID, Valid: report.Valid}
	for _, w := range report.Warnings {
		ww := WireWarning{Type: w.Type, Message: w.Message}
		for _, c := range w.Cells {
			ww.Cells = append(ww.Cells, [2]int{c.Row, c.Col})
		}
		resp.Warnings = append(resp.Warnings, ww)
	}
	s.send(resp)
}

// decodeGrid converts the wire grid into an engine grid, rejecting
// ragged rows and dimensions past the configured cap.
func (s *Server) decodeGrid(rows [][]WireCell) (*grid.Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("missing 'g' parameter")
	}
	maxDim := s.config.Server.MaxGridDim
	if len(rows) > maxDim || len(rows[0]) > maxDim {
		return nil, fmt.Errorf("grid exceeds maximum dimension %d", maxDim)
	}
	g := grid.New(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != g.Cols {
			return nil, fmt.Errorf("ragged grid: row %d has %d cells, want %d", r, len(row), g.Cols)
		}
		for c, cell := range row {
			if cell.Black {
				g.Cells[r][c].Black = true
				continue
			}
			if cell.Letter == "" {
				continue
			}
			if len(cell.Letter) != 1 {
				return nil, fmt.Errorf("cell (%d,%d): letter must be a single character", r, c)
			}
			b := cell.Letter[0]
			if b >= 'a' && b <= 'z' {
				b -= 'a' - 'A'
			}
			if b < 'A' || b > 'Z' {
				return nil, fmt.Errorf("cell (%d,%d): invalid letter %q", r, c, cell.Letter)
			}
			g.Cells[r][c].Letter = b
		}
	}
	return g, nil
}

func (s *Server) clampLimit(limit int) int {
	if limit < 1 {
		return s.config.Engine.SuggestLimit
	}
	if limit > s.config.Server.MaxLimit {
		return s.config.Server.MaxLimit
	}
	return limit
}

func wireSlot(sl grid.Slot) WireSlot {
	return WireSlot{
		Number:    sl.Number,
		Row:       sl.Row,
		Col:       sl.Col,
		Length:    sl.Length,
		Direction: sl.Direction.String(),
		Pattern:   sl.Pattern.String(),
	}
}

func wireCandidate(r analyze.CandidateResult) WireCandidate {
	wc := WireCandidate{
		Word:       r.Entry.Word,
		Display:    r.Entry.Display,
		Score:      r.MatchScore,
		Unfillable: r.Unfillable,
		Severity:   string(r.Crossing.Severity()),
		Details:    make([]WireCrossing, len(r.Details)),
	}
	if r.Crossing.IsUnconstrained() {
		wc.Unconstrained = true
	} else {
		n := r.Crossing.Count()
		wc.Crossing = &n
	}
	for i, d := range r.Details {
		wd := WireCrossing{
			Offset:    d.Offset,
			Direction: d.Direction.String(),
			Length:    d.Length,
		}
		if d.Count.IsUnconstrained() {
			wd.Unconstrained = true
		} else {
			n := d.Count.Count()
			wd.Count = &n
		}
		wc.Details[i] = wd
	}
	return wc
}

func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
