// Package demo holds reference inputs for the analyzer: the worked
// example classes and a small Java source unit.
package demo

import "github.com/TFMV/codemetrics/analysis"

// WorkedExamples returns the reference classes with their directly
// supplied metrics. Instability is derived from the couplings.
func WorkedExamples() []analysis.NamedValues {
	return []analysis.NamedValues{
		{
			Name:   "ComplexProcessor",
			Values: analysis.Values{Cyclomatic: 15, Cognitive: 18, WMC: 25, LCOM: 0.3, Ca: 3, Ce: 8},
		},
		{
			Name:   "MixedUtilityClass",
			Values: analysis.Values{Cyclomatic: 6, Cognitive: 8, WMC: 28, LCOM: 0.85, Ca: 2, Ce: 4},
		},
		{
			Name:   "TightlyCoupledService",
			Values: analysis.Values{Cyclomatic: 8, Cognitive: 10, WMC: 22, LCOM: 0.4, Ca: 8, Ce: 15},
		},
		{
			Name:   "Car",
			Values: analysis.Values{Cyclomatic: 12, Cognitive: 14, WMC: 35, LCOM: 0.6, Ca: 5, Ce: 12},
		},
	}
}

// SampleName is the unit name of SampleSource.
const SampleName = "Car.java"

// SampleSource is a small class with a little of every construct the
// lexical counter looks for.
const SampleSource = `public class Car {
    private String model;
    private int speed;

    public Car(String model) {
        this.model = model;
    }

    public void accelerate(int delta) {
        if (delta < 0) {
            throw new IllegalArgumentException("delta");
        }
        for (int i = 0; i < delta; i++) {
            speed++;
        }
    }

    public void brake() {
        while (speed > 0) {
            speed--;
        }
    }

    public String gear() {
        switch (speed / 20) {
            case 0: return "first";
            case 1: return "second";
            default: return "third";
        }
    }

    public void load(Cargo cargo) {
        try {
            cargo.check();
        } catch (IllegalStateException e) {
            speed = 0;
        }
    }
}
`
