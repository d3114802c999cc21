// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

// newsFixture returns a small, already-normalized news corpus with six
// documents per category.
func newsFixture() (docs, labels []string) {
	corpus := map[string][]string{
		"Technology": {
			"apple unveils new iphone with faster ai chip",
			"google releases android update with ai assistant",
			"microsoft software update improves computer security",
			"new chip from apple powers the latest iphone",
			"startup builds robot with ai software and digital sensors",
			"android phones get new ai chip from google",
		},
		"Business": {
			"stock market rallies as investors cheer strong earnings",
			"company profit rises on higher trade volume",
			"bitcoin price surges as crypto investment grows",
			"economy slows while finance ministers watch inflation",
			"bank shares fall after weak quarterly earnings report",
			"investors buy stock after company raises profit outlook",
		},
		"Sports": {
			"team wins championship after dramatic final game",
			"star player scores twice as league leaders win",
			"coach praises football team after victory",
			"basketball championship goes to overtime thriller",
			"soccer league announces new season schedule for players",
			"olympics sprinter wins gold in record race",
		},
		"Entertainment": {
			"new movie tops box office on opening weekend",
			"actor joins cast of hollywood film sequel",
			"pop star releases album ahead of world concert tour",
			"celebrity couple attends film festival premiere",
			"streaming series renewed after record audience",
			"music awards celebrate best album of the year",
		},
		"Politics": {
			"senate passes bill on healthcare reform",
			"president signs law after congress vote",
			"election campaign heats up as candidates debate policy",
			"parliament debates government budget proposal",
			"minister resigns amid political scandal",
			"voters head to polls in national election",
		},
	}

	for _, label := range []string{"Technology", "Business", "Sports", "Entertainment", "Politics"} {
		for _, doc := range corpus[label] {
			docs = append(docs, doc)
			labels = append(labels, label)
		}
	}
	return docs, labels
}

// toyDataset returns a separable three-class problem over four features:
// each class is marked by its own feature, feature 3 is shared noise.
func toyDataset() ([]SparseVector, []int) {
	var X []SparseVector
	var y []int
	for k := 0; k < 3; k++ {
		for r := 0; r < 4; r++ {
			if r%2 == 0 {
				X = append(X, SparseVector{Indices: []int{k}, Values: []float64{1}})
			} else {
				X = append(X, SparseVector{Indices: []int{k, 3}, Values: []float64{0.8, 0.6}})
			}
			y = append(y, k)
		}
	}
	return X, y
}
