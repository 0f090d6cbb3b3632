//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"

	"aichef/internal/app"
	"aichef/internal/backend"
	"aichef/internal/config"
	"aichef/internal/crash"
	"aichef/internal/export"
	"aichef/internal/history"
	applog "aichef/internal/log"
	"aichef/internal/storage"
	"aichef/internal/telemetry"
	"aichef/internal/version"
)

// Run opens the recipe window and blocks until it is closed.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")
	defer crash.Recover(opts.DataDir)

	fyneApp := fyneapp.NewWithID("dev.aichef.desktop")
	applyTheme(fyneApp, opts.Config.General.Theme)
	w := fyneApp.NewWindow("AI Chef")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1000)
	winH := prefs.IntWithFallback("window.height", 720)
	if winW < 640 {
		winW = 640
	}
	if winH < 480 {
		winH = 480
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	kv, err := openKV(opts, prefs)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(kv); err != nil {
			l.Error("close history store", slog.Any("err", err))
		}
	}()
	hist := history.Open(kv)

	view := newRecipeView()
	ctrl := app.New(app.Deps{
		Generator: backend.NewClient(opts.Config.Backend.Endpoint, opts.Config.Backend.Timeout()),
		History:   hist,
		View:      view,
		Confirm: app.ConfirmFunc(func(title, msg string, fn func(bool)) {
			dialog.ShowConfirm(title, msg, fn, w)
		}),
		Post:   fyne.Do,
		Events: telemetry.Default(),
	})
	view.ctrl = ctrl
	w.SetContent(view.layout(func() { ctrl.ToggleSidebar() }, ctrl.ClearHistory))
	if prefs.BoolWithFallback("sidebar.visible", true) {
		ctrl.ToggleSidebar()
	}

	exportItem := func(label string, f export.Format) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() {
			r, ok := ctrl.Current()
			if !ok {
				dialog.ShowInformation("Export", "Generate or select a recipe first.", w)
				return
			}
			save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				if uc == nil {
					return
				}
				outPath := uc.URI().Path()
				_ = uc.Close()
				if err := export.Write(f, r, outPath); err != nil {
					l.Error("export failed", slog.String("format", string(f)), slog.Any("err", err))
					dialog.ShowError(err, w)
					return
				}
				l.Info("recipe exported", slog.String("format", string(f)), slog.String("path", outPath))
				dialog.ShowInformation("Export", "Exported to "+outPath, w)
			}, w)
			save.SetFileName(export.FileName(r, f))
			save.SetFilter(fstorage.NewExtensionFileFilter([]string{f.Ext()}))
			save.Show()
		})
	}
	fileMenu := fyne.NewMenu("File",
		exportItem("Export Recipe as PDF…", export.FormatPDF),
		exportItem("Export Recipe Card as PNG…", export.FormatPNG),
		exportItem("Export Recipe as Markdown…", export.FormatMarkdown),
	)
	historyMenu := fyne.NewMenu("History",
		fyne.NewMenuItem("Toggle Sidebar", func() { ctrl.ToggleSidebar() }),
		fyne.NewMenuItem("Clear History…", ctrl.ClearHistory),
	)
	aboutItem := fyne.NewMenuItem("About AI Chef", func() {
		exe, _ := os.Executable()
		info := fmt.Sprintf("AI Chef\nVersion: %s\nOS: %s\nArch: %s\nGo: %s\nExecutable: %s\nEndpoint: %s\nHistory: %s",
			version.String(), runtime.GOOS, runtime.GOARCH, runtime.Version(), exe,
			opts.Config.Backend.Endpoint, opts.Config.History.Store)
		dialog.ShowInformation("About", info, w)
	})
	copyrightItem := fyne.NewMenuItem("Copyright…", func() {
		msg := fmt.Sprintf("AI Chef\nCopyright © 2025-%d The AI Chef Authors\n\nLicensed under the Apache License, Version 2.0.", time.Now().Year())
		dialog.ShowInformation("Copyright", msg, w)
	})
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, historyMenu, fyne.NewMenu("About", aboutItem, copyrightItem)))

	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		prefs.SetBool("sidebar.visible", ctrl.SidebarVisible())
		w.Close()
	})

	w.Canvas().Focus(view.entry)
	w.ShowAndRun()
	return nil
}

func openKV(opts Options, prefs fyne.Preferences) (storage.KV, error) {
	if opts.Config.History.Store == config.StorePreferences {
		return newPrefsKV(prefs), nil
	}
	kv, err := storage.Open(opts.Config.History.Store, opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return kv, nil
}

// variantTheme pins the default theme to one variant.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t variantTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, t.variant)
}

func applyTheme(a fyne.App, name string) {
	switch name {
	case "dark":
		a.Settings().SetTheme(variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantDark})
	case "light":
		a.Settings().SetTheme(variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantLight})
	}
}
