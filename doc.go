// Package vlist virtualizes huge ordered lists: it classifies each item into
// a visibility tier relative to a moving viewport so hosts can unmount or
// strip everything outside a small window, while computed leading and
// trailing paddings preserve the full scroll extent.
//
// The engine is platform-agnostic. It talks to its host exclusively through
// the Target capability interface; package tcellview provides a terminal
// implementation on top of tcell.
//
// A minimal setup:
//
//	engine := vlist.NewEngine(vlist.StaticResolver(target)).
//		SetMargins(200, 400).
//		SetLayout(vlist.NewMeasuredLayout())
//	if err := engine.Start(); err != nil {
//		// target resolution failed
//	}
//	defer engine.Stop()
package vlist
