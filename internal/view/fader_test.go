package view_test

import (
	"testing"

	"github.com/danhigham/contestdash/internal/view"
)

func TestFader_NewFadeSupersedesOld(t *testing.T) {
	f := view.NewFader()

	out := f.Begin(view.RegionAdminNav, view.FadeOut)
	in := f.Begin(view.RegionAdminNav, view.FadeIn)

	if f.Live(out) {
		t.Error("superseded fade-out still live")
	}
	if f.Finish(out) {
		t.Error("Finish(stale) = true, want false")
	}
	if !f.Running(view.RegionAdminNav) {
		t.Error("stale finish stopped the live fade")
	}
	if !f.Finish(in) {
		t.Error("Finish(live) = false, want true")
	}
	if f.Running(view.RegionAdminNav) {
		t.Error("region still running after finish")
	}
	if f.Finish(in) {
		t.Error("second Finish = true, want false")
	}
}

func TestFader_RegionsIndependent(t *testing.T) {
	f := view.NewFader()
	a := f.Begin(view.RegionLoading, view.FadeOut)
	b := f.Begin(view.RegionUserPanel, view.FadeIn)
	if !f.Live(a) || !f.Live(b) {
		t.Error("fades on different regions interfered")
	}
}

func TestFader_Outgoing(t *testing.T) {
	f := view.NewFader()
	out := f.Begin(view.RegionLoading, view.FadeOut)
	if !f.Outgoing(view.RegionLoading) {
		t.Fatal("Outgoing = false during fade-out")
	}
	if out.Direction != view.FadeOut {
		t.Errorf("Direction = %v, want FadeOut", out.Direction)
	}

	f.Begin(view.RegionLoading, view.FadeIn)
	if f.Outgoing(view.RegionLoading) {
		t.Error("fade-in did not interrupt the fade-out")
	}

	tok := f.Begin(view.RegionError, view.FadeOut)
	f.Finish(tok)
	if f.Outgoing(view.RegionError) {
		t.Error("Outgoing = true after the fade-out finished")
	}
}
