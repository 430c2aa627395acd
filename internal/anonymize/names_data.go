package anonymize

// firstNamesList seeds the recognizer's given-name table. Lowercase,
// Russian full forms plus frequent short forms. The table is loaded once
// into a map at first use.
var firstNamesList = []string{
	// male
	"александр", "алексей", "анатолий", "андрей", "антон", "аркадий",
	"арсений", "артем", "артём", "борис", "вадим", "валентин", "валерий",
	"василий", "виктор", "виталий", "владимир", "владислав", "вячеслав",
	"геннадий", "георгий", "глеб", "григорий", "даниил", "денис",
	"дмитрий", "евгений", "егор", "иван", "игорь", "илья", "кирилл",
	"константин", "лев", "леонид", "максим", "матвей", "михаил",
	"никита", "николай", "олег", "павел", "петр", "пётр", "роман",
	"руслан", "семен", "семён", "сергей", "станислав", "степан",
	"тимофей", "федор", "фёдор", "эдуард", "юрий", "ярослав",
	// female
	"александра", "алина", "алла", "анастасия", "ангелина", "анна",
	"антонина", "валентина", "валерия", "вера", "вероника", "виктория",
	"галина", "дарья", "диана", "евгения", "екатерина", "елена",
	"елизавета", "жанна", "зинаида", "инна", "ирина", "кира", "ксения",
	"лариса", "лидия", "любовь", "людмила", "маргарита", "марина",
	"мария", "надежда", "наталия", "наталья", "нина", "оксана", "ольга",
	"полина", "раиса", "светлана", "софия", "софья", "тамара", "татьяна",
	"ульяна", "юлия", "яна",
}
