// comorbid: Comorbidity Classification and Scoring Library
// Copyright (c) 2022 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/ptra/blob/master/LICENSE.txt>.

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"comorbid/classify"
	"comorbid/cohort"
	"comorbid/config"
	"comorbid/synth"
	"comorbid/table"
	"comorbid/taxonomy"
)

/*
Comorbid classifies diagnosis codes into comorbidity categories and computes per-patient risk scores.

Usage:
	comorbid comorbidity inputFile outputFile [flags]
	comorbid hfrs inputFile outputFile [flags]
	comorbid disability inputFile outputFile [flags]
	comorbid synth outputFile [flags]
	comorbid combinations [flags]

Example:
	comorbid comorbidity diagnoses.parquet scores.csv --age age --variant shmi --weighting shmi
	comorbid hfrs diagnoses.csv frailty.parquet --age age --pfilters age75+
	comorbid comorbidity "SELECT * FROM diagnoses" scores --pg postgres://localhost/ehr

Input and output files are CSV or Parquet, chosen by extension. CSV outputs get a <output>.meta.toml file with the
run settings; Parquet outputs carry them as key/value metadata.

The flags are:

--config file
	A TOML run file with any of the settings below. Flags given on the command line override the file.
--id column
	The identifier column of the input. Default id.
--code column
	The diagnosis code column of the input. Default code.
--age column
	The age column of the input. When set, comorbidity adds an age-adjusted score.
--score charlson | elixhauser
	The score family.
--icd icd9 | icd10
	The coding system of the input codes.
--variant name
	The category mapping variant, e.g. quan or shmi. See the combinations mode.
--weighting name
	The weighting variant, e.g. charlson, quan, shmi or vw. Defaults to charlson for Charlson and vw for Elixhauser.
--exclusions
	Apply the mutual-exclusion rules when scoring, e.g. mild liver disease does not count next to severe liver
	disease. Default true; pass --exclusions=false to disable.
--normalize
	Trim, upper-case and remove dots from codes before matching.
--agePolicy max | strict
	How conflicting ages of one identifier are resolved: take the maximum, or fail.
--columns all | observed
	Which impairment columns the disability mode outputs.
--tables file
	A TOML file with extra category mapping, weight, HFRS or disability tables.
--pfilters id | ageN+ | ageN-
	A comma-separated list of filters selecting the patients to score, e.g. age75+ for patients aged 75 and over.
--pg connection
	Read the input from and write the output to PostgreSQL. The input is a table name or a query, the output a
	table name.
--hfrsCacheSize nr
	The capacity of the HFRS code lookup cache.
--seed nr
	The random seed of the synth mode. 0 picks a random seed.
--nrOfThreads nr
	The number of threads comorbid uses.
*/

const (
	programVersion = 0.1
	programName    = "comorbid"
)

func programMessage() string {
	return fmt.Sprint(programName, " version ", programVersion, " compiled with ", runtime.Version())
}

const comorbidHelp = "\ncomorbid parameters:\n" +
	"comorbid comorbidity | hfrs | disability inputFile outputFile\n" +
	"comorbid synth outputFile\n" +
	"comorbid combinations\n" +
	"[--config file]\n" +
	"[--id column]\n" +
	"[--code column]\n" +
	"[--age column]\n" +
	"[--score charlson | elixhauser]\n" +
	"[--icd icd9 | icd10]\n" +
	"[--variant name]\n" +
	"[--weighting name]\n" +
	"[--exclusions]\n" +
	"[--normalize]\n" +
	"[--agePolicy max | strict]\n" +
	"[--columns all | observed]\n" +
	"[--tables file]\n" +
	"[--pfilters id | ageN+ | ageN-]\n" +
	"[--pg connection]\n" +
	"[--hfrsCacheSize nr]\n" +
	"[--seed nr]\n" +
	"[--nrOfThreads nr]\n"

func parseFlags(flags *flag.FlagSet, requiredArgs int, help string) {
	if len(os.Args) < requiredArgs {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
	flags.SetOutput(io.Discard)
	if err := flags.Parse(os.Args[requiredArgs:]); err != nil {
		x := 0
		if err != flag.ErrHelp {
			fmt.Fprint(os.Stderr, err)
			x = 1
		}
		fmt.Fprint(os.Stderr, help)
		os.Exit(x)
	}
	if flags.NArg() > 0 {
		fmt.Fprint(os.Stderr, "Cannot parse remaining parameters:", flags.Args())
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
}

func getFileName(s, help string) string {
	switch s {
	case "-h", "--h", "-help", "--help":
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
	return s
}

// requiredArgs returns the number of leading arguments, program name included, a mode takes.
func requiredArgs(mode string) int {
	switch mode {
	case config.ModeCombinations:
		return 2
	case config.ModeSynth:
		return 3
	default:
		return 4
	}
}

func getPatientFilter(s string) (filter cohort.PatientFilter, usesAge bool) {
	if s == "id" {
		return cohort.IdentityFilter(), false
	}
	if strings.HasPrefix(s, "age") && len(s) > 4 {
		age, err := strconv.Atoi(s[3 : len(s)-1])
		if err == nil {
			switch s[len(s)-1] {
			case '+':
				return cohort.AgeAtLeast(age), true
			case '-':
				return cohort.AgeBelow(age), true
			}
		}
	}
	log.Fatalf("Unknown patient filter: %s", s)
	return nil, false
}

func getPatientFilters(f string) (filters []cohort.PatientFilter, usesAge bool) {
	for _, s := range strings.Split(f, ",") {
		filter, age := getPatientFilter(strings.TrimSpace(s))
		filters = append(filters, filter)
		usesAge = usesAge || age
	}
	return filters, usesAge
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, comorbidHelp)
		os.Exit(1)
	}
	run := config.Default()
	run.Mode = getFileName(os.Args[1], comorbidHelp)
	var configFile string
	var flags flag.FlagSet
	// options for the comorbid command
	flags.StringVar(&configFile, "config", "", "A TOML file with run settings.")
	flags.StringVar(&run.IDColumn, "id", run.IDColumn, "The identifier column.")
	flags.StringVar(&run.CodeColumn, "code", run.CodeColumn, "The diagnosis code column.")
	flags.StringVar(&run.AgeColumn, "age", run.AgeColumn, "The age column, enables age adjustment.")
	flags.StringVar(&run.Score, "score", run.Score, "The score family: charlson or elixhauser.")
	flags.StringVar(&run.CodingSystem, "icd", run.CodingSystem, "The coding system: icd9 or icd10.")
	flags.StringVar(&run.Variant, "variant", run.Variant, "The category mapping variant.")
	flags.StringVar(&run.Weighting, "weighting", run.Weighting, "The weighting variant.")
	flags.BoolVar(&run.ApplyExclusions, "exclusions", run.ApplyExclusions, "Apply the mutual-exclusion rules.")
	flags.BoolVar(&run.NormalizeCodes, "normalize", run.NormalizeCodes, "Normalise codes before matching.")
	flags.StringVar(&run.AgePolicy, "agePolicy", run.AgePolicy, "Resolution of conflicting ages: max or strict.")
	flags.StringVar(&run.Columns, "columns", run.Columns, "Disability columns: all or observed.")
	flags.StringVar(&run.Tables, "tables", run.Tables, "A TOML file with extra lookup tables.")
	flags.StringVar(&run.PFilters, "pfilters", run.PFilters, "A list of pfilters to restrict scoring to "+
		"specific patients.")
	flags.StringVar(&run.Postgres, "pg", run.Postgres, "A PostgreSQL connection string.")
	flags.IntVar(&run.HFRSCacheSize, "hfrsCacheSize", run.HFRSCacheSize, "The HFRS lookup cache capacity.")
	flags.UintVar(&run.Seed, "seed", run.Seed, "The random seed of the synth mode.")
	flags.IntVar(&run.NrOfThreads, "nrOfThreads", run.NrOfThreads, "The number of threads comorbid uses.")
	// parse optional arguments
	nofArgs := requiredArgs(run.Mode)
	parseFlags(&flags, nofArgs, comorbidHelp)
	if configFile != "" {
		if err := run.LoadFile(configFile); err != nil {
			log.Fatal(err)
		}
		// flags on the command line win over the run file
		parseFlags(&flags, nofArgs, comorbidHelp)
	}
	// parse required arguments
	switch nofArgs {
	case 4:
		run.Input = getFileName(os.Args[2], comorbidHelp)
		run.Output = getFileName(os.Args[3], comorbidHelp)
	case 3:
		run.Output = getFileName(os.Args[2], comorbidHelp)
	}
	if err := run.Validate(); err != nil {
		log.Fatal(err)
	}
	// build an output command line
	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " ", run.Mode)
	if run.Input != "" {
		fmt.Fprint(&command, " ", run.Input)
	}
	if run.Output != "" {
		fmt.Fprint(&command, " ", run.Output)
	}
	fmt.Fprint(&command, " --id ", run.IDColumn)
	fmt.Fprint(&command, " --code ", run.CodeColumn)
	if run.AgeColumn != "" {
		fmt.Fprint(&command, " --age ", run.AgeColumn)
	}
	fmt.Fprint(&command, " --score ", run.Score)
	fmt.Fprint(&command, " --icd ", run.CodingSystem)
	fmt.Fprint(&command, " --variant ", run.Variant)
	if run.Weighting != "" {
		fmt.Fprint(&command, " --weighting ", run.Weighting)
	}
	fmt.Fprint(&command, " --exclusions=", run.ApplyExclusions)
	if run.NormalizeCodes {
		fmt.Fprint(&command, " --normalize")
	}
	fmt.Fprint(&command, " --agePolicy ", run.AgePolicy)
	fmt.Fprint(&command, " --columns ", run.Columns)
	if run.Tables != "" {
		fmt.Fprint(&command, " --tables ", run.Tables)
	}
	fmt.Fprint(&command, " --pfilters ", run.PFilters)
	if run.Postgres != "" {
		fmt.Fprint(&command, " --pg <connection>")
	}
	fmt.Fprint(&command, " --hfrsCacheSize ", run.HFRSCacheSize)
	if run.Mode == config.ModeSynth {
		fmt.Fprint(&command, " --seed ", run.Seed)
	}
	if run.NrOfThreads > 0 {
		runtime.GOMAXPROCS(run.NrOfThreads)
		fmt.Fprint(&command, " --nrOfThreads ", run.NrOfThreads)
	}
	// start execution
	log.Println(programMessage())
	log.Println("Executing command:\n", command.String())
	//1. Load the lookup tables
	reg := taxonomy.Default()
	if run.Tables != "" {
		var err error
		if reg, err = taxonomy.Builtin(); err != nil {
			log.Fatal(err)
		}
		if err = reg.LoadTOMLFile(run.Tables); err != nil {
			log.Fatal(err)
		}
	}
	switch run.Mode {
	case config.ModeCombinations:
		printCombinations(reg)
		return
	case config.ModeSynth:
		generate(run, reg)
		return
	}
	//2. Read the input and restrict it to the selected patients
	ctx := context.Background()
	frame := readInput(ctx, run)
	fmt.Println("Read", frame.Len(), "rows from", run.Input)
	filters, usesAge := getPatientFilters(run.PFilters)
	if usesAge && run.AgeColumn == "" {
		log.Fatal("Patient filters on age need an age column, see --age")
	}
	frame, kept, err := cohort.ApplyPatientFilters(filters, frame, run.IDColumn, run.CodeColumn, run.AgeColumn)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Patients selected by filters:", kept)
	//3. Score
	var res *table.Result
	var summarize string
	switch run.Mode {
	case config.ModeComorbidity:
		params, err := run.Params(reg)
		if err != nil {
			log.Fatal(err)
		}
		if res, err = classify.Comorbidity(frame, params); err != nil {
			log.Fatal(err)
		}
		summarize = classify.ScoreColumn
	case config.ModeHFRS:
		engine := classify.NewHFRSEngine(reg.HFRS(), run.HFRSCacheSize)
		if res, err = engine.ScoreFrame(frame, run.IDColumn, run.CodeColumn); err != nil {
			log.Fatal(err)
		}
		stats := engine.CacheStats()
		fmt.Printf("HFRS lookup cache: %d entries, hit rate %.3f\n", stats.Size, stats.HitRate())
		summarize = classify.HFRSColumn
	case config.ModeDisability:
		columns, err := config.ParseColumnPolicy(run.Columns)
		if err != nil {
			log.Fatal(err)
		}
		opts := []classify.Option{classify.WithRegistry(reg), classify.WithColumns(columns)}
		if run.NormalizeCodes {
			opts = append(opts, classify.WithNormalizedCodes())
		}
		if res, err = classify.Disability(frame, run.IDColumn, run.CodeColumn, opts...); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println("Scored identifiers:", res.Len())
	if summarize != "" {
		values, _ := res.Column(summarize)
		fmt.Println(summarize+":", cohort.Summarize(values))
	}
	//4. Write the result
	writeOutput(ctx, run, res)
	fmt.Println("Output written to", run.Output)
}

func printCombinations(reg *taxonomy.Registry) {
	fmt.Println("score, coding_system, variant: weighting variants")
	for _, c := range reg.Combinations() {
		fmt.Println(c.String()+":", strings.Join(reg.WeightingVariants(c.Key()), ", "))
	}
	if ns := reg.DisabilityNamespace(); ns != nil {
		fmt.Println("disability:", strings.Join(ns.Names(), ", "))
	}
	fmt.Println("hfrs:", len(reg.HFRS()), "categories")
}

func generate(run *config.Run, reg *taxonomy.Registry) {
	ns, err := reg.Namespace(run.Score, run.CodingSystem, run.Variant)
	if err != nil {
		log.Fatal(err)
	}
	frame := synth.Population(ns, uint32(run.Seed))
	if err := table.SaveFrame(run.Output, frame); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Synthetic population of", frame.Len(), "rows written to", run.Output)
}

func readInput(ctx context.Context, run *config.Run) *table.Frame {
	if run.Postgres == "" {
		frame, err := table.Open(run.Input)
		if err != nil {
			log.Fatal(err)
		}
		return frame
	}
	pool, err := table.Connect(ctx, run.Postgres)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	var frame *table.Frame
	if strings.ContainsAny(run.Input, " \t\n") {
		frame, err = table.ReadPostgres(ctx, pool, run.Input)
	} else {
		frame, err = table.ReadPostgresTable(ctx, pool, run.Input)
	}
	if err != nil {
		log.Fatal(err)
	}
	return frame
}

func writeOutput(ctx context.Context, run *config.Run, res *table.Result) {
	if run.Postgres == "" {
		if err := table.Save(run.Output, res); err != nil {
			log.Fatal(err)
		}
		return
	}
	pool, err := table.Connect(ctx, run.Postgres)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	if _, err := table.WritePostgres(ctx, pool, run.Output, res); err != nil {
		log.Fatal(err)
	}
}
