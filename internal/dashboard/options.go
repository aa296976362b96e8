package dashboard

// Options are the filters shared by all pages.
type Options struct {
	// Releases after this year are left out of trends over time.
	YearCutoff int
	// Genre compared against the whole catalogue.
	Genre string
	// Format looked at in detail on the electronic page.
	Format string
	// Country left out of the country ranking; Discogs uses "Europe" for
	// pan-European releases.
	ExcludeCountry string
	// Number of histogram bins.
	Bins int
}

func DefaultOptions() Options {
	return Options{
		YearCutoff:     2020,
		Genre:          "Electronic",
		Format:         "Vinyl",
		ExcludeCountry: "Europe",
		Bins:           30,
	}
}
