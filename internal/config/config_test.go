package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kflame/internal/config"
	"github.com/san-kum/kflame/internal/spectral"
)

var _ = Describe("Config", func() {
	Describe("Default", func() {
		It("is a valid runnable configuration", func() {
			cfg := config.Default()
			sc, err := cfg.SimConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.N).To(Equal(config.DefaultN))
			Expect(sc.H).To(Equal(config.DefaultDt))
			Expect(sc.Form).To(Equal(spectral.Derivative))
		})
	})

	Describe("SimConfig", func() {
		It("rejects a zero domain scale", func() {
			cfg := config.Default()
			cfg.K = 0
			_, err := cfg.SimConfig()
			Expect(err).To(MatchError(spectral.ErrInvalidConfig))
		})

		It("rejects a non-positive time step", func() {
			cfg := config.Default()
			cfg.Dt = -0.1
			_, err := cfg.SimConfig()
			Expect(err).To(MatchError(spectral.ErrInvalidConfig))
		})

		It("rejects an unknown form", func() {
			cfg := config.Default()
			cfg.Form = "pseudospectral"
			_, err := cfg.SimConfig()
			Expect(err).To(HaveOccurred())
		})

		It("defaults an empty form to derivative", func() {
			cfg := config.Default()
			cfg.Form = ""
			sc, err := cfg.SimConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Form).To(Equal(spectral.Derivative))
		})
	})

	Describe("Load and Save", func() {
		It("round-trips through yaml", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "run.yaml")

			cfg := config.Default()
			cfg.N = 48
			cfg.Form = "integral"
			cfg.Seed = 99

			Expect(config.Save(path, cfg)).To(Succeed())

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})

		It("fills unspecified fields from defaults", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "partial.yaml")
			Expect(os.WriteFile(path, []byte("n: 8\nk: 3\n"), 0644)).To(Succeed())

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.N).To(Equal(8))
			Expect(loaded.K).To(Equal(3.0))
			Expect(loaded.Dt).To(Equal(config.DefaultDt))
			Expect(loaded.Form).To(Equal(string(spectral.Derivative)))
		})

		It("fails on a missing file", func() {
			_, err := config.Load("/nonexistent/kflame.yaml")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Presets", func() {
		It("returns a copy, not the shared entry", func() {
			a := config.GetPreset("chaotic")
			Expect(a).NotTo(BeNil())
			a.N = 1
			b := config.GetPreset("chaotic")
			Expect(b.N).NotTo(Equal(1))
		})

		It("every preset converts to a valid sim config", func() {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				_, err := cfg.SimConfig()
				Expect(err).NotTo(HaveOccurred(), "preset %s", name)
			}
		})

		It("returns nil for an unknown preset", func() {
			Expect(config.GetPreset("laminar")).To(BeNil())
		})
	})
})
