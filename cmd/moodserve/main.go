// Command moodserve serves a fresh piece of animated terminal art per
// SSH session. The username picks the mood (a name matches an anchor,
// anything else is treated as free text), the connection time seeds
// the grammar, so every visit is different.
//
//	ssh -t euphoria@host -p 2222
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gliderlabs/ssh"

	"github.com/lixenwraith/moodgrid/emotion"
	"github.com/lixenwraith/moodgrid/export"
	"github.com/lixenwraith/moodgrid/pipeline"
	"github.com/lixenwraith/moodgrid/scene"
)

const (
	sessionFPS  = 10
	sessionTime = 60 * time.Second
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	addr := flag.String("addr", ":2222", "listen address")
	hostKey := flag.String("host-key", "host_key", "ed25519 host key path")
	flag.Parse()

	if err := ensureHostKey(*hostKey); err != nil {
		log.Fatalf("host key: %v", err)
	}

	server := &ssh.Server{
		Addr:    *addr,
		Handler: handleSession,
	}
	if err := server.SetOption(ssh.HostKeyFile(*hostKey)); err != nil {
		log.Fatalf("set host key: %v", err)
	}

	log.Printf("listening on %s, connect with: ssh -t <mood>@localhost -p %s",
		*addr, strings.TrimPrefix(*addr, ":"))
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	user := sess.User()
	seed := time.Now().UnixNano() % 1_000_000
	log.Printf("session: %s (%s, seed %d)", user, sess.RemoteAddr(), seed)

	req := pipeline.Request{Seed: seed}
	if emotion.KnownName(user) {
		req.Mood = user
	} else {
		req.Text = user
	}

	w, h := ptyReq.Window.Width, ptyReq.Window.Height
	spec, vp, err := pipeline.BuildSpec(req)
	if err != nil {
		fmt.Fprintf(sess, "render error: %v\n", err)
		return
	}

	io.WriteString(sess, enableAltScreen+hideCursor+clearScreen)
	defer io.WriteString(sess, showCursor+disableAltScreen)

	// a keypress or EOF ends the session early
	done := make(chan struct{})
	go func() {
		buf := make([]byte, 16)
		_, _ = sess.Read(buf)
		close(done)
	}()

	ticker := time.NewTicker(time.Second / sessionFPS)
	defer ticker.Stop()
	deadline := time.After(sessionTime)
	start := time.Now()
	frame := 0

	for {
		select {
		case <-done:
			return
		case <-deadline:
			return
		case win := <-winCh:
			w, h = win.Width, win.Height
		case <-ticker.C:
			if err := drawFrame(sess, spec, vp, w, h, time.Since(start).Seconds(), frame); err != nil {
				return
			}
			frame++
		}
	}
}

func drawFrame(sess ssh.Session, spec *scene.Spec, vp map[string]float64, w, h int, t float64, frame int) error {
	if h > 1 {
		h--
	}
	if w < 2 || h < 2 {
		return nil
	}
	g, err := pipeline.RenderSpec(spec, vp, w, h, t, frame)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(sess, cursorHome); err != nil {
		return err
	}
	return export.WriteANSI(sess, g, spec.Gradient)
}

const (
	enableAltScreen  = "\x1b[?1049h"
	disableAltScreen = "\x1b[?1049l"
	hideCursor       = "\x1b[?25l"
	showCursor       = "\x1b[?25h"
	clearScreen      = "\x1b[2J"
	cursorHome       = "\x1b[H"
)

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	log.Println("generating new host key")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
}
