package locale

import (
	"golang.org/x/text/language"
)

type Key string

const (
	KeyAppTitle         Key = "app.title"
	KeyWelcome          Key = "step.welcome"
	KeySex              Key = "step.sex"
	KeyAge              Key = "step.age"
	KeyWeight           Key = "step.weight"
	KeyHeight           Key = "step.height"
	KeyNeck             Key = "step.neck"
	KeyWaist            Key = "step.waist"
	KeyHip              Key = "step.hip"
	KeyLoading          Key = "step.loading"
	KeyResults          Key = "step.results"
	KeyMale             Key = "sex.male"
	KeyFemale           Key = "sex.female"
	KeyYears            Key = "unit.years"
	KeyKg               Key = "unit.kg"
	KeyLbs              Key = "unit.lbs"
	KeyCm               Key = "unit.cm"
	KeyIn               Key = "unit.in"
	KeyFt               Key = "unit.ft"
	KeyInvalidNumber    Key = "error.invalid_number"
	KeyOutOfRange       Key = "error.out_of_range"
	KeyCalculationError Key = "error.calculation"
	KeyBMI              Key = "result.bmi"
	KeyBMIBased         Key = "result.bmi_based"
	KeyNavy             Key = "result.navy"
	KeyRelativeFatMass  Key = "result.relative_fat_mass"
	KeyCunBae           Key = "result.cun_bae"
	KeyEcore            Key = "result.ecore"
	KeyAverage          Key = "result.average"
	KeyNotAvailable     Key = "result.not_available"
	KeyCategoryPrefix   Key = "category."
	KeyMessagePrefix    Key = "category_message."
	KeyBack             Key = "action.back"
	KeyReset            Key = "action.reset"
)

// tables holds one string table per supported locale. Every table has the same keys.
var tables = map[language.Tag]map[Key]string{
	language.English: {
		KeyAppTitle:         "Body Fat Calculator",
		KeyWelcome:          "Estimate your body fat percentage with five scientific formulas.",
		KeySex:              "What is your biological sex?",
		KeyAge:              "How old are you?",
		KeyWeight:           "What is your weight?",
		KeyHeight:           "How tall are you?",
		KeyNeck:             "What is your neck circumference?",
		KeyWaist:            "What is your waist circumference?",
		KeyHip:              "What is your hip circumference?",
		KeyLoading:          "Calculating your results...",
		KeyResults:          "Your results",
		KeyMale:             "Male",
		KeyFemale:           "Female",
		KeyYears:            "years",
		KeyKg:               "kg",
		KeyLbs:              "lbs",
		KeyCm:               "cm",
		KeyIn:               "in",
		KeyFt:               "ft",
		KeyInvalidNumber:    "Please enter a valid number.",
		KeyOutOfRange:       "Please enter a value between %s and %s.",
		KeyCalculationError: "Calculation Error: some measurements are missing.",
		KeyBMI:              "Body Mass Index",
		KeyBMIBased:         "BMI based (Deurenberg)",
		KeyNavy:             "U.S. Navy method",
		KeyRelativeFatMass:  "Relative Fat Mass",
		KeyCunBae:           "CUN-BAE",
		KeyEcore:            "ECORE-BF",
		KeyAverage:          "Average body fat",
		KeyNotAvailable:     "n/a",
		KeyBack:             "Back",
		KeyReset:            "Start over",

		KeyCategoryPrefix + "unknown":      "Unknown",
		KeyCategoryPrefix + "contest_prep": "Contest Prep",
		KeyCategoryPrefix + "athletic":     "Athletic",
		KeyCategoryPrefix + "average":      "Average",
		KeyCategoryPrefix + "overweight":   "Overweight",
		KeyCategoryPrefix + "obese":        "Obese",

		KeyMessagePrefix + "unknown":      "We could not classify your result.",
		KeyMessagePrefix + "contest_prep": "Very low body fat, typical for competition preparation. Hard to sustain.",
		KeyMessagePrefix + "athletic":     "Lean and athletic. Keep up the training.",
		KeyMessagePrefix + "average":      "Within the typical range for your sex.",
		KeyMessagePrefix + "overweight":   "Above the typical range. Regular activity and diet can help.",
		KeyMessagePrefix + "obese":        "Well above the typical range. Consider talking to a health professional.",
	},
	language.Turkish: {
		KeyAppTitle:         "Vücut Yağ Oranı Hesaplayıcı",
		KeyWelcome:          "Vücut yağ oranınızı beş bilimsel formülle tahmin edin.",
		KeySex:              "Biyolojik cinsiyetiniz nedir?",
		KeyAge:              "Kaç yaşındasınız?",
		KeyWeight:           "Kilonuz nedir?",
		KeyHeight:           "Boyunuz nedir?",
		KeyNeck:             "Boyun çevreniz nedir?",
		KeyWaist:            "Bel çevreniz nedir?",
		KeyHip:              "Kalça çevreniz nedir?",
		KeyLoading:          "Sonuçlarınız hesaplanıyor...",
		KeyResults:          "Sonuçlarınız",
		KeyMale:             "Erkek",
		KeyFemale:           "Kadın",
		KeyYears:            "yaş",
		KeyKg:               "kg",
		KeyLbs:              "lbs",
		KeyCm:               "cm",
		KeyIn:               "inç",
		KeyFt:               "ft",
		KeyInvalidNumber:    "Lütfen geçerli bir sayı girin.",
		KeyOutOfRange:       "Lütfen %s ile %s arasında bir değer girin.",
		KeyCalculationError: "Hesaplama Hatası: bazı ölçümler eksik.",
		KeyBMI:              "Vücut Kitle İndeksi",
		KeyBMIBased:         "VKİ tabanlı (Deurenberg)",
		KeyNavy:             "ABD Donanması yöntemi",
		KeyRelativeFatMass:  "Göreceli Yağ Kütlesi",
		KeyCunBae:           "CUN-BAE",
		KeyEcore:            "ECORE-BF",
		KeyAverage:          "Ortalama yağ oranı",
		KeyNotAvailable:     "yok",
		KeyBack:             "Geri",
		KeyReset:            "Baştan başla",

		KeyCategoryPrefix + "unknown":      "Bilinmiyor",
		KeyCategoryPrefix + "contest_prep": "Yarışma Hazırlığı",
		KeyCategoryPrefix + "athletic":     "Atletik",
		KeyCategoryPrefix + "average":      "Ortalama",
		KeyCategoryPrefix + "overweight":   "Fazla Kilolu",
		KeyCategoryPrefix + "obese":        "Obez",

		KeyMessagePrefix + "unknown":      "Sonucunuz sınıflandırılamadı.",
		KeyMessagePrefix + "contest_prep": "Çok düşük yağ oranı, yarışma hazırlığına özgü. Sürdürmesi zordur.",
		KeyMessagePrefix + "athletic":     "Fit ve atletik. Antrenmanlara devam edin.",
		KeyMessagePrefix + "average":      "Cinsiyetiniz için olağan aralıkta.",
		KeyMessagePrefix + "overweight":   "Olağan aralığın üzerinde. Düzenli aktivite ve beslenme yardımcı olabilir.",
		KeyMessagePrefix + "obese":        "Olağan aralığın çok üzerinde. Bir sağlık uzmanına danışmayı düşünün.",
	},
}
