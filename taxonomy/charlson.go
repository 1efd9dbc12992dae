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

package taxonomy

// Charlson categories, in column order:
// ami: acute myocardial infarction, chf: congestive heart failure, pvd: peripheral vascular disease,
// cevd: cerebrovascular disease, dementia, copd: chronic pulmonary disease, rheumd: rheumatic disease,
// pud: peptic ulcer disease, mld: mild liver disease, diab: diabetes without complications,
// diabwc: diabetes with complications, hp: hemiplegia or paraplegia, rend: renal disease, canc: any malignancy,
// msld: moderate or severe liver disease, metacanc: metastatic solid tumour, aids: AIDS/HIV.

// charlsonICD10Quan follows Quan et al. 2005, Med Care 43(11).
func charlsonICD10Quan() []Category {
	return []Category{
		{"ami", codes("I21", "I22", "I252")},
		{"chf", codes("I099", "I110", "I130", "I132", "I255", "I420", span("I42", 5, 9, 1), "I43", "I50", "P290")},
		{"pvd", codes("I70", "I71", "I731", "I738", "I739", "I771", "I790", "I792", "K551", "K558", "K559",
			"Z958", "Z959")},
		{"cevd", codes("G45", "G46", "H340", span("I", 60, 69, 2))},
		{"dementia", codes(span("F", 0, 3, 2), "F051", "G30", "G311")},
		{"copd", codes("I278", "I279", span("J", 40, 47, 2), span("J", 60, 67, 2), "J684", "J701", "J703")},
		{"rheumd", codes("M05", "M06", "M315", span("M", 32, 34, 2), "M351", "M353", "M360")},
		{"pud", codes(span("K", 25, 28, 2))},
		{"mld", codes("B18", span("K70", 0, 3, 1), "K709", span("K71", 3, 5, 1), "K717", "K73", "K74", "K760",
			span("K76", 2, 4, 1), "K768", "K769", "Z944")},
		{"diab", codes("E100", "E101", "E106", "E108", "E109", "E110", "E111", "E116", "E118", "E119", "E120",
			"E121", "E126", "E128", "E129", "E130", "E131", "E136", "E138", "E139", "E140", "E141", "E146", "E148",
			"E149")},
		{"diabwc", codes(span("E10", 2, 5, 1), "E107", span("E11", 2, 5, 1), "E117", span("E12", 2, 5, 1), "E127",
			span("E13", 2, 5, 1), "E137", span("E14", 2, 5, 1), "E147")},
		{"hp", codes("G041", "G114", "G801", "G802", "G81", "G82", span("G83", 0, 4, 1), "G839")},
		{"rend", codes("I120", "I131", span("N03", 2, 7, 1), span("N05", 2, 7, 1), "N18", "N19", "N250",
			span("Z49", 0, 2, 1), "Z940", "Z992")},
		{"canc", codes(span("C", 0, 26, 2), span("C", 30, 34, 2), span("C", 37, 41, 2), "C43", span("C", 45, 58, 2),
			span("C", 60, 76, 2), span("C", 81, 85, 2), "C88", span("C", 90, 97, 2))},
		{"msld", codes("I850", "I859", "I864", "I982", "K704", "K711", "K721", "K729", span("K76", 5, 7, 1))},
		{"metacanc", codes(span("C", 77, 80, 2))},
		{"aids", codes(span("B", 20, 22, 2), "B24")},
	}
}

// charlsonICD9Quan is the enhanced ICD-9-CM coding algorithm of Quan et al. 2005.
func charlsonICD9Quan() []Category {
	return []Category{
		{"ami", codes("410", "412")},
		{"chf", codes("39891", "40201", "40211", "40291", "40401", "40403", "40411", "40413", "40491", "40493",
			span("", 4254, 4259, 4), "428")},
		{"pvd", codes("0930", "4373", "440", "441", span("", 4431, 4439, 4), "4471", "5571", "5579", "V434")},
		{"cevd", codes("36234", span("", 430, 438, 3))},
		{"dementia", codes("290", "2941", "3312")},
		{"copd", codes("4168", "4169", span("", 490, 505, 3), "5064", "5081", "5088")},
		{"rheumd", codes("4465", span("", 7100, 7104, 4), span("", 7140, 7142, 4), "7148", "725")},
		{"pud", codes(span("", 531, 534, 3))},
		{"mld", codes("07022", "07023", "07032", "07033", "07044", "07054", "0706", "0709", "570", "571", "5733",
			"5734", "5738", "5739", "V427")},
		{"diab", codes(span("", 2500, 2503, 4), "2508", "2509")},
		{"diabwc", codes(span("", 2504, 2507, 4))},
		{"hp", codes("3341", "342", "343", span("", 3440, 3446, 4), "3449")},
		{"rend", codes("40301", "40311", "40391", "40402", "40403", "40412", "40413", "40492", "40493", "582",
			span("", 5830, 5837, 4), "585", "586", "5880", "V420", "V451", "V56")},
		{"canc", codes(span("", 140, 172, 3), span("", 1740, 1958, 4), span("", 200, 208, 3), "2386")},
		{"msld", codes(span("", 4560, 4562, 4), span("", 5722, 5728, 4))},
		{"metacanc", codes(span("", 196, 199, 3))},
		{"aids", codes("042", "043", "044")},
	}
}

// charlsonICD10SHMI is the Charlson code list of the NHS Summary Hospital-level Mortality Indicator.
func charlsonICD10SHMI() []Category {
	return []Category{
		{"ami", codes("I21", "I22", "I23", "I252", "I258")},
		{"chf", codes("I110", "I130", "I132", "I50")},
		{"pvd", codes("I70", "I71", "I731", "I738", "I739", "I771", "I790", "I792", "K551", "K558", "K559",
			"Z958", "Z959")},
		{"cevd", codes(span("G45", 0, 2, 1), "G454", "G458", "G459", "G46", span("I", 60, 69, 2))},
		{"dementia", codes(span("F", 0, 3, 2), "F051")},
		{"copd", codes(span("J", 40, 47, 2), span("J", 60, 67, 2))},
		{"rheumd", codes("M05", "M06", "M09", "M120", "M315", span("M", 32, 34, 2), "M353")},
		{"pud", codes(span("K", 25, 28, 2))},
		{"mld", codes("B18", span("K70", 0, 3, 1), "K709", span("K71", 3, 5, 1), "K717", "K73", "K74")},
		{"diab", codes("E100", "E101", "E109", "E110", "E111", "E119", "E120", "E121", "E129", "E130", "E131",
			"E139", "E140", "E141", "E149")},
		{"diabwc", codes(span("E10", 2, 8, 1), span("E11", 2, 8, 1), span("E12", 2, 8, 1), span("E13", 2, 8, 1),
			span("E14", 2, 8, 1))},
		{"hp", codes("G041", "G81", "G82")},
		{"rend", codes("I120", "I131", "N01", "N03", span("N05", 2, 7, 1), "N18", "N19", "N25")},
		{"canc", codes(span("C", 0, 76, 2), span("C", 81, 97, 2))},
		{"msld", codes("I850", "I859", "I864", "I982", "K704", "K711", "K72", span("K76", 5, 7, 1))},
		{"metacanc", codes(span("C", 77, 80, 2))},
		{"aids", codes(span("B", 20, 24, 2))},
	}
}

// charlsonWeights maps weighting variant -> category -> weight. Every Charlson namespace shares these categories.
var charlsonWeights = map[string]map[string]float64{
	WeightCharlson: {
		"ami": 1, "chf": 1, "pvd": 1, "cevd": 1, "dementia": 1, "copd": 1, "rheumd": 1, "pud": 1, "mld": 1,
		"diab": 1, "diabwc": 2, "hp": 2, "rend": 2, "canc": 2, "msld": 3, "metacanc": 6, "aids": 6,
	},
	WeightQuan: {
		"ami": 0, "chf": 2, "pvd": 0, "cevd": 0, "dementia": 2, "copd": 1, "rheumd": 1, "pud": 0, "mld": 2,
		"diab": 0, "diabwc": 1, "hp": 2, "rend": 1, "canc": 2, "msld": 4, "metacanc": 6, "aids": 4,
	},
	// SHMI weights are log odds scaled to integers; diabetes with complications is protective.
	WeightSHMI: {
		"ami": 5, "chf": 13, "pvd": 6, "cevd": 11, "dementia": 14, "copd": 4, "rheumd": 4, "pud": 9, "mld": 8,
		"diab": 3, "diabwc": -1, "hp": 1, "rend": 10, "canc": 8, "msld": 18, "metacanc": 14, "aids": 2,
	},
}
