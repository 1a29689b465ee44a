package main

import (
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type link struct {
	Rating string `yaml:"rating,omitempty"`
	Salary string `yaml:"salary,omitempty"`
	Link   string `yaml:"link"`
}

type benefits struct {
	GoodInsurance    bool     `yaml:"good_insurance"`
	Pregnancy        bool     `yaml:"pregnancy"`
	CoversDependents bool     `yaml:"covers_dependents"`
	MaternityLeaves  int      `yaml:"maternity_leaves"`
	Extras           []string `yaml:"extras,omitempty"`
}

type company struct {
	Location         string   `yaml:"location"`
	CareerPage       string   `yaml:"career_page"`
	Remote           bool     `yaml:"remote"`
	OfficePicture    string   `yaml:"office_picture,omitempty"`
	StrikeOut        bool     `yaml:"strike_out,omitempty"`
	Glassdoor        link     `yaml:"glassdoor"`
	SoftwareEngineer link     `yaml:"software_engineer"`
	Benefits         benefits `yaml:"benefits"`
}

var (
	cities = []string{"Cairo", "Berlin", "Lagos", "Austin", "Lisbon", "Nairobi", "Dubai"}
	extras = []string{"Gym membership", "Stock options", "Yearly bonus", "Free lunch", "Learning budget"}
)

// Writes deterministic sample company records for trying the generator.
func main() {
	dir := flag.String("dir", "companies", "output directory")
	total := flag.Int("n", 25, "number of companies")
	flag.Parse()

	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		panic(err)
	}

	for i := 0; i < *total; i++ {
		key := fmt.Sprintf("Company%03d", i+1)
		slug := fmt.Sprintf("company%03d", i+1)
		c := company{
			Location:   cities[mr.Intn(len(cities))],
			CareerPage: "https://" + slug + ".example.com/careers",
			Remote:     mr.Float64() < 0.4,
			StrikeOut:  mr.Float64() < 0.1,
			Glassdoor: link{
				Rating: fmt.Sprintf("%.1f", 2.5+mr.Float64()*2.5),
				Link:   "https://www.glassdoor.com/Overview/" + slug,
			},
			SoftwareEngineer: link{
				Salary: fmt.Sprintf("%dk", 20+mr.Intn(60)),
				Link:   "https://www.glassdoor.com/Salary/" + slug,
			},
			Benefits: benefits{
				GoodInsurance:    mr.Float64() < 0.5,
				Pregnancy:        mr.Float64() < 0.3,
				CoversDependents: mr.Float64() < 0.3,
				MaternityLeaves:  3 + mr.Intn(4),
				Extras:           sampleExtras(mr, 1+mr.Intn(3)),
			},
		}
		if i%3 == 0 {
			c.OfficePicture = "https://" + slug + ".example.com/office.jpg"
		}

		b, err := yaml.Marshal(c)
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(filepath.Join(*dir, key+".yaml"), b, 0o644); err != nil {
			panic(err)
		}
	}
	fmt.Printf("wrote %d records to %s\n", *total, *dir)
}

func sampleExtras(r *mrand.Rand, k int) []string {
	if k >= len(extras) {
		k = len(extras)
	}
	idx := r.Perm(len(extras))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = extras[j]
	}
	return out
}
