// Copyright 2026 The DeepBrainChain Authors
// This file is part of the DeepBrainChain library.
//
// The DeepBrainChain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The DeepBrainChain library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the DeepBrainChain library. If not, see <http://www.gnu.org/licenses/>.

// Package debugapi is a read-only HTTP query surface over a running
// Chain, grounded on the teacher's api/debug/api.go httprouter wiring:
// plain GET routes returning JSON, no mutation, no auth beyond network
// placement (an operator tool, not a public RPC endpoint).
package debugapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/DeepBrainChain/DeepBrainChain-3.0/chain"
	"github.com/DeepBrainChain/DeepBrainChain-3.0/common"
)

// Server is the debug HTTP server wrapping one Chain.
type Server struct {
	chain *chain.Chain
	addr  string
	mux   http.Handler
}

// New builds the route table: /pool/:id, /task/:id, /attestation/:id,
// /intent/:id, /order/:id, /account/:hex, /blocknumber.
func New(c *chain.Chain, addr string) *Server {
	r := httprouter.New()
	s := &Server{chain: c, addr: addr}

	r.GET("/pool/:id", s.handlePool)
	r.GET("/task/:id", s.handleTask)
	r.GET("/attestation/:id", s.handleAttestation)
	r.GET("/intent/:id", s.handleIntent)
	r.GET("/order/:id", s.handleOrder)
	r.GET("/account/:hex", s.handleAccount)
	r.GET("/blocknumber", s.handleBlockNumber)

	s.mux = cors.Default().Handler(r)
	return s
}

func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.addr, s.mux)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
}

func parseID(w http.ResponseWriter, raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handlePool(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	id, ok := parseID(w, ps.ByName("id"))
	if !ok {
		return
	}
	p, ok := s.chain.Scheduler.GetPool(id)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, p)
}

func (s *Server) handleTask(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	id, ok := parseID(w, ps.ByName("id"))
	if !ok {
		return
	}
	t, ok := s.chain.Scheduler.GetTask(id)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, t)
}

func (s *Server) handleAttestation(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	id, ok := parseID(w, ps.ByName("id"))
	if !ok {
		return
	}
	a, ok := s.chain.Attestation.GetAttestation(id)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, a)
}

func (s *Server) handleIntent(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	id, ok := parseID(w, ps.ByName("id"))
	if !ok {
		return
	}
	i, ok := s.chain.Settlement.GetIntent(id)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, i)
}

func (s *Server) handleOrder(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	id, ok := parseID(w, ps.ByName("id"))
	if !ok {
		return
	}
	o, ok := s.chain.Billing.GetOrder(id)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, o)
}

func (s *Server) handleAccount(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	a := common.HexToAccountID(ps.ByName("hex"))
	writeJSON(w, map[string]string{
		"balance":  s.chain.Ledger.Balance(a).String(),
		"reserved": s.chain.Ledger.Reserved(a).String(),
	})
}

func (s *Server) handleBlockNumber(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, map[string]uint64{"block_number": s.chain.BlockNumber()})
}
