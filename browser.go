package lessonplan

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-lessonplan/internal/process"
)

// networkIdleWindow is how long the page must go without requests before printing.
const networkIdleWindow = 500 * time.Millisecond

// browserLauncher starts a headless browser. An empty bin lets the
// automation library locate (or download) one.
type browserLauncher interface {
	Launch(ctx context.Context, bin string) (browserSession, error)
}

// browserSession is one running browser process.
type browserSession interface {
	PrintPDF(ctx context.Context, url string, opts *proto.PagePrintToPDF, timeout time.Duration) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ browserLauncher = (*rodLauncher)(nil)
	_ browserSession  = (*rodSession)(nil)
)

// rodLauncher launches Chrome through go-rod.
type rodLauncher struct {
	noSandbox bool
}

func (l *rodLauncher) Launch(ctx context.Context, bin string) (browserSession, error) {
	ln := launcher.New().Context(ctx).Headless(true)
	if bin != "" {
		ln = ln.Bin(bin)
	}
	if l.noSandbox {
		ln = ln.NoSandbox(true)
	}

	u, err := ln.Launch()
	if err != nil {
		killLauncher(ln)
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		killLauncher(ln)
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return &rodSession{browser: browser, launcher: ln}, nil
}

// rodSession owns one browser process and its launcher.
type rodSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// PrintPDF opens url, waits for load and network idle, and prints it.
func (s *rodSession) PrintPDF(ctx context.Context, url string, opts *proto.PagePrintToPDF, timeout time.Duration) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	// The wait budget is the renderer timeout, cut short by an earlier ctx deadline.
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}
	p := page.Context(ctx).Timeout(timeout)

	waitIdle := p.WaitRequestIdle(networkIdleWindow, nil, nil, nil)
	if err := p.Navigate(url); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	waitIdle()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := p.PDF(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// Close shuts the browser down. When the graceful close fails the whole
// process group is killed so no renderer child survives.
func (s *rodSession) Close() error {
	err := s.browser.Context(context.Background()).Close()
	if err != nil {
		killLauncher(s.launcher)
	}
	s.launcher.Cleanup()
	return err
}

// killLauncher kills the launched process group. PID 0 means nothing was
// started and must never reach kill(2).
func killLauncher(ln *launcher.Launcher) {
	pid := ln.PID()
	if pid <= 0 {
		return
	}
	process.KillProcessGroup(pid)
	ln.Kill()
}

// DefaultBrowserCandidates returns the executables probed when the default
// launch fails, for the current OS.
func DefaultBrowserCandidates() []string {
	return browserCandidatesFor(runtime.GOOS, os.Getenv)
}

func browserCandidatesFor(goos string, getenv func(string) string) []string {
	const chromeSuffix = `\Google\Chrome\Application\chrome.exe`

	switch goos {
	case "windows":
		out := []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		}
		for _, env := range []string{"LOCALAPPDATA", "PROGRAMFILES", "PROGRAMFILES(X86)"} {
			if dir := getenv(env); dir != "" {
				out = append(out, dir+chromeSuffix)
			}
		}
		return out
	case "darwin":
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		}
	default:
		return []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	}
}
