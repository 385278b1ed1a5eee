package telegram

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// PromptAuth implements gotd's auth.UserAuthenticator by prompting on a
// terminal before the dashboard UI starts.
type PromptAuth struct {
	lines <-chan lineResult
	out   io.Writer
	phone string
}

type lineResult struct {
	text string
	err  error
}

// NewPromptAuth reads answers from in and writes prompts to out. A non-empty
// phone skips the phone prompt.
func NewPromptAuth(in io.Reader, out io.Writer, phone string) *PromptAuth {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			ch <- lineResult{text: strings.TrimSpace(sc.Text())}
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		ch <- lineResult{err: err}
	}()
	return &PromptAuth{lines: ch, out: out, phone: phone}
}

func (a *PromptAuth) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	select {
	case res, ok := <-a.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		if res.text == "" {
			return "", errors.New("empty answer")
		}
		return res.text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (a *PromptAuth) Phone(ctx context.Context) (string, error) {
	if a.phone != "" {
		return a.phone, nil
	}
	return a.ask(ctx, "Phone number: ")
}

func (a *PromptAuth) Code(ctx context.Context, sentCode *tg.AuthSentCode) (string, error) {
	return a.ask(ctx, "Verification code: ")
}

func (a *PromptAuth) Password(ctx context.Context) (string, error) {
	return a.ask(ctx, "2FA password: ")
}

func (a *PromptAuth) AcceptTermsOfService(ctx context.Context, tos tg.HelpTermsOfService) error {
	return &auth.SignUpRequired{TermsOfService: tos}
}

func (a *PromptAuth) SignUp(ctx context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("sign up not supported")
}
