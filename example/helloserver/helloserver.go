// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/convert"
)

type server struct {
	addr    netip.Addr
	port    convert.Port
	showEnv bool
}

func (s *server) CommandLine() []cmdline.Annotation {
	return []cmdline.Annotation{
		cmdline.OptionMethod("Addr", cmdline.Option{Short: 'a', Long: "addr", ArgName: "ip", Usage: "Address to listen on (default all)"}),
		cmdline.OptionMethod("Port", cmdline.Option{Short: 'p', Long: "port", Usage: "Port to listen on (default 8080)"}),
		cmdline.OptionMethod("Env", cmdline.Option{Long: "env", Usage: "Serve the environment at /env"}),
		cmdline.MainMethod("Serve"),
	}
}

func (s *server) Addr(ip netip.Addr)  { s.addr = ip }
func (s *server) Port(p convert.Port) { s.port = p }
func (s *server) Env()                { s.showEnv = true }

// Serve answers every request with the given words, or "Hello, world!".
func (s *server) Serve(words []string) error {
	reply := "Hello, world!"
	if len(words) > 0 {
		reply = strings.Join(words, " ")
	}
	host := ""
	if s.addr.IsValid() {
		host = s.addr.String()
	}
	listen := net.JoinHostPort(host, strconv.Itoa(int(s.port)))
	log.Printf("listening on %s", listen)
	return http.ListenAndServe(listen, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.showEnv && r.URL.Path == "/env" {
			fmt.Fprintln(w, os.Environ())
			return
		}
		fmt.Fprintln(w, reply)
	}))
}

func main() {
	s := &server{port: 8080}
	if err := cmdline.New(cmdline.Config{Name: "helloserver"}).Bind(s).ParseAndRun(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
