package classifier

import "github.com/lexroute/lexroute/pkg/routes"

// SeedExamples returns the built-in training corpus covering every
// classifiable domain. Feedback-derived labels are merged on top of this
// set at retrain time.
func SeedExamples() []Example {
	return []Example{
		// Family law
		{Text: "want to file for divorce from my spouse", Domain: routes.DomainFamily},
		{Text: "child custody battle with ex husband", Domain: routes.DomainFamily},
		{Text: "domestic violence and need protection order", Domain: routes.DomainFamily},
		{Text: "alimony and child support payment issues", Domain: routes.DomainFamily},
		{Text: "adoption process and legal requirements", Domain: routes.DomainFamily},
		{Text: "prenuptial agreement before marriage", Domain: routes.DomainFamily},
		{Text: "property division during divorce proceedings", Domain: routes.DomainFamily},
		{Text: "grandparents visitation rights for grandchildren", Domain: routes.DomainFamily},
		{Text: "paternity test and fathers rights", Domain: routes.DomainFamily},
		{Text: "spousal support after legal separation", Domain: routes.DomainFamily},

		// Criminal law
		{Text: "arrested and charged with crime need defense", Domain: routes.DomainCriminal},
		{Text: "false accusations and need to prove innocence", Domain: routes.DomainCriminal},
		{Text: "police violated my rights during arrest", Domain: routes.DomainCriminal},
		{Text: "bail hearing and release procedures", Domain: routes.DomainCriminal},
		{Text: "plea bargain negotiation with prosecutor", Domain: routes.DomainCriminal},
		{Text: "charged with felony assault after bar fight", Domain: routes.DomainCriminal},
		{Text: "expungement of criminal record", Domain: routes.DomainCriminal},
		{Text: "dui charges and license suspension", Domain: routes.DomainCriminal},
		{Text: "juvenile criminal charges for minor", Domain: routes.DomainCriminal},
		{Text: "appeal criminal conviction to higher court", Domain: routes.DomainCriminal},

		// Corporate law
		{Text: "forming an llc for my small business", Domain: routes.DomainCorporate},
		{Text: "shareholder dispute over company direction", Domain: routes.DomainCorporate},
		{Text: "merger and acquisition due diligence", Domain: routes.DomainCorporate},
		{Text: "board of directors fiduciary duty breach", Domain: routes.DomainCorporate},
		{Text: "business partnership agreement and equity split", Domain: routes.DomainCorporate},
		{Text: "corporate compliance and securities filings", Domain: routes.DomainCorporate},
		{Text: "incorporating a startup and issuing stock", Domain: routes.DomainCorporate},
		{Text: "dissolving a corporation and winding up", Domain: routes.DomainCorporate},
		{Text: "minority shareholder oppression claim", Domain: routes.DomainCorporate},
		{Text: "choosing between llc and s corporation", Domain: routes.DomainCorporate},

		// Property law
		{Text: "my landlord wont return my security deposit after I moved out", Domain: routes.DomainProperty},
		{Text: "landlord is trying to evict me without proper notice", Domain: routes.DomainProperty},
		{Text: "apartment has mold and landlord refuses to fix it", Domain: routes.DomainProperty},
		{Text: "buying a house and reviewing purchase agreement", Domain: routes.DomainProperty},
		{Text: "boundary dispute with neighbor over fence", Domain: routes.DomainProperty},
		{Text: "mortgage foreclosure on my home", Domain: routes.DomainProperty},
		{Text: "title defect discovered during home closing", Domain: routes.DomainProperty},
		{Text: "easement across my land for utility access", Domain: routes.DomainProperty},
		{Text: "homeowners association fining me unfairly", Domain: routes.DomainProperty},
		{Text: "lease agreement has unfair terms and conditions", Domain: routes.DomainProperty},

		// Employment law
		{Text: "wrongfully terminated from my job without cause", Domain: routes.DomainEmployment},
		{Text: "workplace harassment by supervisor and colleagues", Domain: routes.DomainEmployment},
		{Text: "discrimination based on gender race religion at work", Domain: routes.DomainEmployment},
		{Text: "not receiving overtime pay for extra hours", Domain: routes.DomainEmployment},
		{Text: "unsafe working conditions and health hazards", Domain: routes.DomainEmployment},
		{Text: "employer not providing promised benefits", Domain: routes.DomainEmployment},
		{Text: "whistleblower retaliation for reporting violations", Domain: routes.DomainEmployment},
		{Text: "pregnancy discrimination and maternity leave", Domain: routes.DomainEmployment},
		{Text: "wage theft and unpaid salary issues", Domain: routes.DomainEmployment},
		{Text: "non compete agreement restricting job opportunities", Domain: routes.DomainEmployment},

		// Immigration law
		{Text: "visa application denied need legal help", Domain: routes.DomainImmigration},
		{Text: "green card process and permanent residency", Domain: routes.DomainImmigration},
		{Text: "citizenship application and naturalization", Domain: routes.DomainImmigration},
		{Text: "deportation proceedings and defense", Domain: routes.DomainImmigration},
		{Text: "family reunification and spouse visa", Domain: routes.DomainImmigration},
		{Text: "work permit and employment authorization", Domain: routes.DomainImmigration},
		{Text: "asylum application for political persecution", Domain: routes.DomainImmigration},
		{Text: "student visa and educational immigration", Domain: routes.DomainImmigration},
		{Text: "immigration court hearing and representation", Domain: routes.DomainImmigration},
		{Text: "overstayed visa and legal consequences", Domain: routes.DomainImmigration},

		// Intellectual property
		{Text: "someone is using my trademark without permission", Domain: routes.DomainIntellectualProp},
		{Text: "filing a patent for my invention", Domain: routes.DomainIntellectualProp},
		{Text: "copyright infringement of my creative work", Domain: routes.DomainIntellectualProp},
		{Text: "trade secret stolen by former employee", Domain: routes.DomainIntellectualProp},
		{Text: "dmca takedown notice for my content", Domain: routes.DomainIntellectualProp},
		{Text: "licensing my software to another company", Domain: routes.DomainIntellectualProp},
		{Text: "registering a trademark for my brand", Domain: routes.DomainIntellectualProp},
		{Text: "patent infringement lawsuit against competitor", Domain: routes.DomainIntellectualProp},
		{Text: "fair use defense for quoting copyrighted material", Domain: routes.DomainIntellectualProp},
		{Text: "royalty dispute over licensed intellectual property", Domain: routes.DomainIntellectualProp},

		// Tax law
		{Text: "irs audit of my tax return", Domain: routes.DomainTax},
		{Text: "disputed tax liability and penalties", Domain: routes.DomainTax},
		{Text: "estate tax planning for inheritance", Domain: routes.DomainTax},
		{Text: "accused of tax evasion need representation", Domain: routes.DomainTax},
		{Text: "claiming deductions for home office expenses", Domain: routes.DomainTax},
		{Text: "back taxes owed and payment plan options", Domain: routes.DomainTax},
		{Text: "property tax assessment appeal", Domain: routes.DomainTax},
		{Text: "sales tax obligations for online business", Domain: routes.DomainTax},
		{Text: "tax court petition deadline and procedure", Domain: routes.DomainTax},
		{Text: "offshore account reporting requirements", Domain: routes.DomainTax},

		// Constitutional law
		{Text: "my freedom of speech was violated by the government", Domain: routes.DomainConstitutional},
		{Text: "first amendment rights at public protest", Domain: routes.DomainConstitutional},
		{Text: "due process violation in administrative hearing", Domain: routes.DomainConstitutional},
		{Text: "equal protection claim against state law", Domain: routes.DomainConstitutional},
		{Text: "illegal search and seizure by police", Domain: routes.DomainConstitutional},
		{Text: "civil rights lawsuit against city government", Domain: routes.DomainConstitutional},
		{Text: "religious freedom restricted by regulation", Domain: routes.DomainConstitutional},
		{Text: "voting rights and ballot access dispute", Domain: routes.DomainConstitutional},
		{Text: "government taking my property without compensation", Domain: routes.DomainConstitutional},
		{Text: "challenging a statute as unconstitutional", Domain: routes.DomainConstitutional},

		// Contract law
		{Text: "other party breached our business contract agreement", Domain: routes.DomainContract},
		{Text: "contractor didnt complete work as specified", Domain: routes.DomainContract},
		{Text: "supplier delivered goods different from contract", Domain: routes.DomainContract},
		{Text: "service provider not meeting contract obligations", Domain: routes.DomainContract},
		{Text: "breach of confidentiality agreement by employee", Domain: routes.DomainContract},
		{Text: "vendor payment terms dispute and delays", Domain: routes.DomainContract},
		{Text: "construction contract delays and cost overruns", Domain: routes.DomainContract},
		{Text: "reviewing terms and conditions before signing", Domain: routes.DomainContract},
		{Text: "verbal agreement enforceability question", Domain: routes.DomainContract},
		{Text: "franchise agreement terms not being honored", Domain: routes.DomainContract},

		// Tort law
		{Text: "injured in car accident need compensation", Domain: routes.DomainTort},
		{Text: "slip and fall accident at shopping mall", Domain: routes.DomainTort},
		{Text: "medical malpractice caused permanent damage", Domain: routes.DomainTort},
		{Text: "defective product caused serious injury", Domain: routes.DomainTort},
		{Text: "dog bite incident in public place", Domain: routes.DomainTort},
		{Text: "motorcycle accident with severe injuries", Domain: routes.DomainTort},
		{Text: "defamation of character in newspaper article", Domain: routes.DomainTort},
		{Text: "negligent security led to my assault", Domain: routes.DomainTort},
		{Text: "wrongful death claim for family member", Domain: routes.DomainTort},
		{Text: "emotional distress from harassment campaign", Domain: routes.DomainTort},

		// Bankruptcy law
		{Text: "overwhelming credit card debt considering bankruptcy", Domain: routes.DomainBankruptcy},
		{Text: "chapter 7 versus chapter 13 bankruptcy options", Domain: routes.DomainBankruptcy},
		{Text: "creditors garnishing my wages", Domain: routes.DomainBankruptcy},
		{Text: "business insolvency and reorganization", Domain: routes.DomainBankruptcy},
		{Text: "automatic stay stopping foreclosure", Domain: routes.DomainBankruptcy},
		{Text: "discharge of medical debt in bankruptcy", Domain: routes.DomainBankruptcy},
		{Text: "bankruptcy trustee demanding asset turnover", Domain: routes.DomainBankruptcy},
		{Text: "debt relief options without filing bankruptcy", Domain: routes.DomainBankruptcy},
		{Text: "means test eligibility for chapter 7", Domain: routes.DomainBankruptcy},
		{Text: "creditor harassment after filing petition", Domain: routes.DomainBankruptcy},
	}
}
