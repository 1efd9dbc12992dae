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

// Elixhauser categories, in column order:
// chf: congestive heart failure, carit: cardiac arrhythmias, valv: valvular disease, pcd: pulmonary circulation
// disorders, pvd: peripheral vascular disorders, hypunc: hypertension uncomplicated, hypc: hypertension complicated,
// para: paralysis, ond: other neurological disorders, cpd: chronic pulmonary disease, diabunc: diabetes
// uncomplicated, diabc: diabetes complicated, hypothy: hypothyroidism, rf: renal failure, ld: liver disease,
// pud: peptic ulcer disease excluding bleeding, aids: AIDS/HIV, lymph: lymphoma, metacanc: metastatic cancer,
// solidtum: solid tumour without metastasis, rheumd: rheumatoid arthritis/collagen vascular diseases,
// coag: coagulopathy, obes: obesity, wloss: weight loss, fed: fluid and electrolyte disorders, blane: blood loss
// anaemia, dane: deficiency anaemia, alcohol: alcohol abuse, drug: drug abuse, psycho: psychoses, depre: depression.

// elixhauserICD10Quan follows Quan et al. 2005.
func elixhauserICD10Quan() []Category {
	return []Category{
		{"chf", codes("I099", "I110", "I130", "I132", "I255", "I420", span("I42", 5, 9, 1), "I43", "I50", "P290")},
		{"carit", codes(span("I44", 1, 3, 1), "I456", "I459", span("I", 47, 49, 2), "R000", "R001", "R008", "T821",
			"Z450", "Z950")},
		{"valv", codes("A520", span("I", 5, 8, 2), "I091", "I098", span("I", 34, 39, 2), span("Q23", 0, 3, 1),
			span("Z95", 2, 4, 1))},
		{"pcd", codes("I26", "I27", "I280", "I288", "I289")},
		{"pvd", codes("I70", "I71", "I731", "I738", "I739", "I771", "I790", "I792", "K551", "K558", "K559",
			"Z958", "Z959")},
		{"hypunc", codes("I10")},
		{"hypc", codes(span("I", 11, 13, 2), "I15")},
		{"para", codes("G041", "G114", "G801", "G802", "G81", "G82", span("G83", 0, 4, 1), "G839")},
		{"ond", codes(span("G", 10, 13, 2), span("G", 20, 22, 2), "G254", "G255", "G312", "G318", "G319", "G32",
			span("G", 35, 37, 2), "G40", "G41", "G931", "G934", "R470", "R56")},
		{"cpd", codes("I278", "I279", span("J", 40, 47, 2), span("J", 60, 67, 2), "J684", "J701", "J703")},
		{"diabunc", codes("E100", "E101", "E109", "E110", "E111", "E119", "E120", "E121", "E129", "E130", "E131",
			"E139", "E140", "E141", "E149")},
		{"diabc", codes(span("E10", 2, 8, 1), span("E11", 2, 8, 1), span("E12", 2, 8, 1), span("E13", 2, 8, 1),
			span("E14", 2, 8, 1))},
		{"hypothy", codes(span("E", 0, 3, 2), "E890")},
		{"rf", codes("I120", "I131", "N18", "N19", "N250", span("Z49", 0, 2, 1), "Z940", "Z992")},
		{"ld", codes("B18", "I85", "I864", "I982", "K70", "K711", span("K71", 3, 5, 1), "K717", span("K", 72, 74, 2),
			"K760", span("K76", 2, 9, 1), "Z944")},
		{"pud", codes("K257", "K259", "K267", "K269", "K277", "K279", "K287", "K289")},
		{"aids", codes(span("B", 20, 22, 2), "B24")},
		{"lymph", codes(span("C", 81, 85, 2), "C88", "C96", "C900", "C902")},
		{"metacanc", codes(span("C", 77, 80, 2))},
		{"solidtum", codes(span("C", 0, 26, 2), span("C", 30, 34, 2), span("C", 37, 41, 2), "C43",
			span("C", 45, 58, 2), span("C", 60, 76, 2), "C97")},
		{"rheumd", codes("L940", "L941", "L943", "M05", "M06", "M08", "M120", "M123", "M30", span("M31", 0, 3, 1),
			span("M", 32, 35, 2), "M45", "M461", "M468", "M469")},
		{"coag", codes(span("D", 65, 68, 2), "D691", span("D69", 3, 6, 1))},
		{"obes", codes("E66")},
		{"wloss", codes(span("E", 40, 46, 2), "R634", "R64")},
		{"fed", codes("E222", "E86", "E87")},
		{"blane", codes("D500")},
		{"dane", codes("D508", "D509", span("D", 51, 53, 2))},
		{"alcohol", codes("F10", "E52", "G621", "I426", "K292", "K700", "K703", "K709", "T51", "Z502", "Z714",
			"Z721")},
		{"drug", codes(span("F", 11, 16, 2), "F18", "F19", "Z715", "Z722")},
		{"psycho", codes("F20", span("F", 22, 25, 2), "F28", "F29", "F302", "F312", "F315")},
		{"depre", codes("F204", span("F31", 3, 5, 1), "F32", "F33", "F341", "F412", "F432")},
	}
}

// elixhauserICD9Quan is the enhanced ICD-9-CM Elixhauser algorithm of Quan et al. 2005.
func elixhauserICD9Quan() []Category {
	return []Category{
		{"chf", codes("39891", "40201", "40211", "40291", "40401", "40403", "40411", "40413", "40491", "40493",
			span("", 4254, 4259, 4), "428")},
		{"carit", codes("4260", "42613", "4267", "4269", "42610", "42612", span("", 4270, 4274, 4),
			span("", 4276, 4279, 4), "7850", "99601", "99604", "V450", "V533")},
		{"valv", codes("0932", span("", 394, 397, 3), "424", span("", 7463, 7466, 4), "V422", "V433")},
		{"pcd", codes("4150", "4151", "416", "4170", "4178", "4179")},
		{"pvd", codes("0930", "4373", "440", "441", span("", 4431, 4439, 4), "4471", "5571", "5579", "V434")},
		{"hypunc", codes("401")},
		{"hypc", codes(span("", 402, 405, 3))},
		{"para", codes("3341", "342", "343", span("", 3440, 3446, 4), "3449")},
		{"ond", codes("3319", "3320", "3321", "3334", "3335", "33392", "334", "335", "3362", "340", "341", "345",
			"3481", "3483", "7803", "7843")},
		{"cpd", codes("4168", "4169", span("", 490, 505, 3), "5064", "5081", "5088")},
		{"diabunc", codes(span("", 2500, 2503, 4))},
		{"diabc", codes(span("", 2504, 2509, 4))},
		{"hypothy", codes("2409", "243", "244", "2461", "2468")},
		{"rf", codes("40301", "40311", "40391", "40402", "40403", "40412", "40413", "40492", "40493", "585", "586",
			"5880", "V420", "V451", "V56")},
		{"ld", codes("07022", "07023", "07032", "07033", "07044", "07054", "0706", "0709", span("", 4560, 4562, 4),
			"570", "571", span("", 5722, 5728, 4), "5733", "5734", "5738", "5739", "V427")},
		{"pud", codes("5317", "5319", "5327", "5329", "5337", "5339", "5347", "5349")},
		{"aids", codes("042", "043", "044")},
		{"lymph", codes(span("", 200, 202, 3), "2030", "2386")},
		{"metacanc", codes(span("", 196, 199, 3))},
		{"solidtum", codes(span("", 140, 172, 3), span("", 174, 195, 3))},
		{"rheumd", codes("446", "7010", span("", 7100, 7104, 4), "7108", "7109", "7112", "714", "7193", "720", "725",
			"7285", "72889", "72930")},
		{"coag", codes("286", "2871", span("", 2873, 2875, 4))},
		{"obes", codes("2780")},
		{"wloss", codes(span("", 260, 263, 3), "7832", "7994")},
		{"fed", codes("2536", "276")},
		{"blane", codes("2800")},
		{"dane", codes(span("", 2801, 2809, 4), "281")},
		{"alcohol", codes("2652", span("", 2911, 2913, 4), span("", 2915, 2919, 4), "3030", "3039", "3050", "3575",
			"4255", "5353", span("", 5710, 5713, 4), "980", "V113")},
		{"drug", codes("292", "304", span("", 3052, 3059, 4), "V6542")},
		{"psycho", codes("2938", "295", "29604", "29614", "29644", "29654", "297", "298")},
		{"depre", codes("2962", "2963", "2965", "3004", "309", "311")},
	}
}

// elixhauserWeights maps weighting variant -> category -> weight.
var elixhauserWeights = map[string]map[string]float64{
	WeightVW: {
		"chf": 7, "carit": 5, "valv": -1, "pcd": 4, "pvd": 2, "hypunc": 0, "hypc": 0, "para": 7, "ond": 6,
		"cpd": 3, "diabunc": 0, "diabc": 0, "hypothy": 0, "rf": 5, "ld": 11, "pud": 0, "aids": 0, "lymph": 9,
		"metacanc": 12, "solidtum": 4, "rheumd": 0, "coag": 3, "obes": -4, "wloss": 6, "fed": 5, "blane": -2,
		"dane": -2, "alcohol": 0, "drug": -7, "psycho": 0, "depre": -3,
	},
}
