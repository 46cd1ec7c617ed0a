package routes

// Dataset is the static per-domain reference data the selector reads.
// It is immutable once constructed; refreshes replace the whole dataset.
type Dataset struct {
	Routes   map[Domain][]Route
	Glossary map[Domain][]GlossaryTerm
}

// DefaultDataset returns the built-in legal route and glossary data.
func DefaultDataset() *Dataset {
	return &Dataset{
		Routes:   defaultRoutes(),
		Glossary: defaultGlossary(),
	}
}

func defaultRoutes() map[Domain][]Route {
	return map[Domain][]Route{
		DomainFamily: {
			{
				Domain:  DomainFamily,
				Type:    RouteTypeFiling,
				Title:   "Divorce Proceedings",
				Summary: "Guide through the divorce process including asset division and custody arrangements.",
				Steps: []string{
					"File petition for divorce in appropriate court",
					"Serve divorce papers to spouse",
					"Complete financial disclosure forms",
					"Negotiate settlement or proceed to trial",
					"Finalize divorce decree",
				},
				NextSteps: []string{
					"Gather financial documents",
					"Consider mediation",
					"Consult with family law attorney",
					"File initial paperwork",
				},
				Forms: []Link{
					{Name: "Petition for Divorce", URL: "/forms/divorce-petition"},
					{Name: "Financial Affidavit", URL: "/forms/financial-affidavit"},
					{Name: "Parenting Plan", URL: "/forms/parenting-plan"},
				},
				Resources: []Link{
					{Name: "Family Court Self-Help Center", URL: "/resources/family-court"},
					{Name: "Divorce Mediation Services", URL: "/resources/mediation"},
					{Name: "Child Support Calculator", URL: "/tools/child-support"},
				},
				Cost:           CostRange{MinUSD: 500, MaxUSD: 5000},
				Timeline:       TimelineRange{MinDays: 90, MaxDays: 365},
				AcceptanceRate: 0.72,
				Complexity:     ComplexityMedium,
			},
			{
				Domain:  DomainFamily,
				Type:    RouteTypeMediation,
				Title:   "Child Custody Modification",
				Summary: "Process for modifying existing child custody arrangements.",
				Steps: []string{
					"Demonstrate substantial change in circumstances",
					"File motion to modify custody",
					"Attend mediation if required",
					"Present evidence at hearing",
					"Obtain modified custody order",
				},
				NextSteps: []string{
					"Document changed circumstances",
					"File motion with court",
					"Prepare for mediation",
					"Gather supporting evidence",
				},
				Forms: []Link{
					{Name: "Motion to Modify Custody", URL: "/forms/modify-custody"},
					{Name: "Affidavit of Changed Circumstances", URL: "/forms/changed-circumstances"},
				},
				Resources: []Link{
					{Name: "Custody Modification Guide", URL: "/guides/custody-modification"},
					{Name: "Best Interest Factors", URL: "/resources/best-interest"},
				},
				Cost:           CostRange{MinUSD: 1000, MaxUSD: 3000},
				Timeline:       TimelineRange{MinDays: 60, MaxDays: 180},
				AcceptanceRate: 0.64,
				Complexity:     ComplexityMedium,
			},
		},
		DomainCriminal: {
			{
				Domain:  DomainCriminal,
				Type:    RouteTypeLitigation,
				Title:   "Criminal Defense Process",
				Summary: "Navigate criminal charges from arrest through trial or plea.",
				Steps: []string{
					"Arraignment and plea entry",
					"Discovery and evidence review",
					"Pre-trial motions",
					"Plea negotiations or trial preparation",
					"Sentencing or appeal",
				},
				NextSteps: []string{
					"Contact criminal defense attorney immediately",
					"Exercise right to remain silent",
					"Gather character references",
					"Prepare for arraignment",
				},
				Forms: []Link{
					{Name: "Public Defender Application", URL: "/forms/public-defender"},
					{Name: "Bail Application", URL: "/forms/bail-application"},
				},
				Resources: []Link{
					{Name: "Criminal Defense Lawyers", URL: "/directory/criminal-lawyers"},
					{Name: "Bail Bond Services", URL: "/directory/bail-bonds"},
					{Name: "Know Your Rights Guide", URL: "/guides/criminal-rights"},
				},
				Cost:           CostRange{MinUSD: 2000, MaxUSD: 50000},
				Timeline:       TimelineRange{MinDays: 90, MaxDays: 540},
				AcceptanceRate: 0.58,
				Complexity:     ComplexityHigh,
			},
			{
				Domain:  DomainCriminal,
				Type:    RouteTypeConsultation,
				Title:   "Expungement Eligibility Review",
				Summary: "Determine whether a past conviction can be sealed or expunged.",
				Steps: []string{
					"Obtain certified copy of criminal record",
					"Confirm eligibility under state statute",
					"File petition for expungement",
					"Attend hearing if contested",
				},
				NextSteps: []string{
					"Request criminal history report",
					"Review waiting-period requirements",
					"Consult with defense attorney",
				},
				Resources: []Link{
					{Name: "Expungement Eligibility Tool", URL: "/tools/expungement"},
					{Name: "Record Sealing Guide", URL: "/guides/record-sealing"},
				},
				Cost:           CostRange{MinUSD: 100, MaxUSD: 2000},
				Timeline:       TimelineRange{MinDays: 30, MaxDays: 180},
				AcceptanceRate: 0.66,
				Complexity:     ComplexityLow,
			},
		},
		DomainCorporate: {
			{
				Domain:  DomainCorporate,
				Type:    RouteTypeFiling,
				Title:   "Business Formation",
				Summary: "Guide through choosing and forming a business entity.",
				Steps: []string{
					"Choose business structure (LLC, Corp, etc.)",
					"File formation documents with state",
					"Obtain EIN from IRS",
					"Create operating agreements/bylaws",
					"Comply with ongoing requirements",
				},
				NextSteps: []string{
					"Determine business structure needs",
					"Choose business name and check availability",
					"Prepare formation documents",
					"File with Secretary of State",
				},
				Forms: []Link{
					{Name: "Articles of Incorporation", URL: "/forms/articles-incorporation"},
					{Name: "LLC Operating Agreement", URL: "/forms/llc-operating"},
					{Name: "EIN Application", URL: "/forms/ein-application"},
				},
				Resources: []Link{
					{Name: "Business Structure Comparison", URL: "/guides/business-structures"},
					{Name: "State Filing Requirements", URL: "/resources/state-filing"},
					{Name: "Business License Guide", URL: "/guides/business-licenses"},
				},
				Cost:           CostRange{MinUSD: 100, MaxUSD: 2000},
				Timeline:       TimelineRange{MinDays: 14, MaxDays: 56},
				AcceptanceRate: 0.81,
				Complexity:     ComplexityLow,
			},
		},
		DomainProperty: {
			{
				Domain:  DomainProperty,
				Type:    RouteTypeFiling,
				Title:   "Real Estate Purchase",
				Summary: "Navigate the home buying process and legal requirements.",
				Steps: []string{
					"Make offer and negotiate terms",
					"Conduct property inspection",
					"Secure financing and title search",
					"Review and sign closing documents",
					"Complete property transfer",
				},
				NextSteps: []string{
					"Get pre-approved for mortgage",
					"Hire real estate attorney",
					"Schedule property inspection",
					"Review purchase agreement",
				},
				Forms: []Link{
					{Name: "Purchase Agreement", URL: "/forms/purchase-agreement"},
					{Name: "Property Disclosure", URL: "/forms/property-disclosure"},
					{Name: "Title Insurance Application", URL: "/forms/title-insurance"},
				},
				Resources: []Link{
					{Name: "Home Buying Checklist", URL: "/guides/home-buying"},
					{Name: "Real Estate Attorneys", URL: "/directory/real-estate-lawyers"},
					{Name: "Property Records Search", URL: "/tools/property-search"},
				},
				Cost:           CostRange{MinUSD: 1500, MaxUSD: 15000},
				Timeline:       TimelineRange{MinDays: 30, MaxDays: 60},
				AcceptanceRate: 0.76,
				Complexity:     ComplexityMedium,
			},
			{
				Domain:  DomainProperty,
				Type:    RouteTypeMediation,
				Title:   "Landlord-Tenant Dispute Resolution",
				Summary: "Resolve deposit, repair, or eviction disputes before court.",
				Steps: []string{
					"Review lease terms and notice requirements",
					"Send written demand to other party",
					"Request housing mediation",
					"File in small claims court if unresolved",
				},
				NextSteps: []string{
					"Document property condition with photos",
					"Collect rent and payment records",
					"Contact local housing mediation program",
				},
				Resources: []Link{
					{Name: "Tenant Rights Guide", URL: "/guides/tenant-rights"},
					{Name: "Housing Mediation Programs", URL: "/directory/housing-mediation"},
				},
				Cost:           CostRange{MinUSD: 0, MaxUSD: 500},
				Timeline:       TimelineRange{MinDays: 14, MaxDays: 90},
				AcceptanceRate: 0.69,
				Complexity:     ComplexityLow,
			},
		},
		DomainEmployment: {
			{
				Domain:  DomainEmployment,
				Type:    RouteTypeFiling,
				Title:   "Workplace Discrimination Claim",
				Summary: "Process for filing a discrimination complaint with the EEOC.",
				Steps: []string{
					"Document discriminatory incidents",
					"File complaint with EEOC",
					"Participate in EEOC investigation",
					"Receive right-to-sue letter",
					"File lawsuit if necessary",
				},
				NextSteps: []string{
					"Gather evidence of discrimination",
					"File EEOC complaint within 180/300 days",
					"Consult with employment attorney",
					"Preserve relevant documents",
				},
				Forms: []Link{
					{Name: "EEOC Complaint Form", URL: "/forms/eeoc-complaint"},
					{Name: "Discrimination Incident Log", URL: "/forms/incident-log"},
				},
				Resources: []Link{
					{Name: "EEOC Office Locator", URL: "/directory/eeoc-offices"},
					{Name: "Employment Rights Guide", URL: "/guides/employment-rights"},
					{Name: "Discrimination Lawyers", URL: "/directory/employment-lawyers"},
				},
				Cost:           CostRange{MinUSD: 0, MaxUSD: 5000},
				Timeline:       TimelineRange{MinDays: 180, MaxDays: 540},
				AcceptanceRate: 0.61,
				Complexity:     ComplexityMedium,
			},
			{
				Domain:  DomainEmployment,
				Type:    RouteTypeConsultation,
				Title:   "Wage and Hour Claim",
				Summary: "Recover unpaid wages or overtime through the labor department.",
				Steps: []string{
					"Calculate unpaid wages and overtime",
					"File wage claim with state labor agency",
					"Attend settlement conference",
					"Pursue hearing or court action if needed",
				},
				NextSteps: []string{
					"Collect pay stubs and time records",
					"Confirm filing deadline for your state",
					"File wage claim form",
				},
				Resources: []Link{
					{Name: "Wage Claim Filing Guide", URL: "/guides/wage-claims"},
					{Name: "Overtime Calculator", URL: "/tools/overtime"},
				},
				Cost:           CostRange{MinUSD: 0, MaxUSD: 1000},
				Timeline:       TimelineRange{MinDays: 60, MaxDays: 240},
				AcceptanceRate: 0.67,
				Complexity:     ComplexityLow,
			},
		},
		DomainImmigration: {
			{
				Domain:  DomainImmigration,
				Type:    RouteTypeFiling,
				Title:   "Family-Based Green Card Petition",
				Summary: "Sponsor an eligible relative for lawful permanent residence.",
				Steps: []string{
					"Confirm qualifying family relationship",
					"File Form I-130 petition",
					"Complete adjustment of status or consular processing",
					"Attend biometrics and interview",
					"Receive decision and green card",
				},
				NextSteps: []string{
					"Gather proof of relationship and status",
					"Check current visa bulletin priority dates",
					"Consult with immigration attorney",
				},
				Forms: []Link{
					{Name: "Petition for Alien Relative (I-130)", URL: "/forms/i-130"},
					{Name: "Adjustment of Status (I-485)", URL: "/forms/i-485"},
				},
				Resources: []Link{
					{Name: "Visa Bulletin", URL: "/resources/visa-bulletin"},
					{Name: "Immigration Attorneys", URL: "/directory/immigration-lawyers"},
				},
				Cost:           CostRange{MinUSD: 1500, MaxUSD: 8000},
				Timeline:       TimelineRange{MinDays: 365, MaxDays: 1095},
				AcceptanceRate: 0.63,
				Complexity:     ComplexityHigh,
			},
		},
		DomainIntellectualProp: {
			{
				Domain:  DomainIntellectualProp,
				Type:    RouteTypeFiling,
				Title:   "Trademark Registration",
				Summary: "Register a mark with the USPTO to protect a brand name or logo.",
				Steps: []string{
					"Run clearance search for conflicting marks",
					"File USPTO application",
					"Respond to office actions",
					"Complete publication and registration",
				},
				NextSteps: []string{
					"Search existing trademark database",
					"Identify goods and services classes",
					"Prepare specimen of use",
				},
				Resources: []Link{
					{Name: "Trademark Search Tool", URL: "/tools/trademark-search"},
					{Name: "USPTO Filing Guide", URL: "/guides/uspto-filing"},
				},
				Cost:           CostRange{MinUSD: 250, MaxUSD: 3000},
				Timeline:       TimelineRange{MinDays: 240, MaxDays: 540},
				AcceptanceRate: 0.7,
				Complexity:     ComplexityMedium,
			},
		},
		DomainContract: {
			{
				Domain:  DomainContract,
				Type:    RouteTypeMediation,
				Title:   "Contract Dispute Resolution",
				Summary: "Resolve a breach of contract through negotiation or mediation.",
				Steps: []string{
					"Review contract terms and breach evidence",
					"Send demand letter",
					"Attempt negotiation or mediation",
					"File suit if settlement fails",
				},
				NextSteps: []string{
					"Collect the signed agreement and correspondence",
					"Quantify damages",
					"Draft demand letter",
				},
				Resources: []Link{
					{Name: "Demand Letter Templates", URL: "/forms/demand-letter"},
					{Name: "Commercial Mediation Services", URL: "/directory/mediation"},
				},
				Cost:           CostRange{MinUSD: 500, MaxUSD: 10000},
				Timeline:       TimelineRange{MinDays: 30, MaxDays: 365},
				AcceptanceRate: 0.65,
				Complexity:     ComplexityMedium,
			},
		},
		DomainBankruptcy: {
			{
				Domain:  DomainBankruptcy,
				Type:    RouteTypeFiling,
				Title:   "Chapter 7 Bankruptcy Filing",
				Summary: "Discharge qualifying consumer debts through liquidation bankruptcy.",
				Steps: []string{
					"Complete credit counseling course",
					"Pass the means test",
					"File petition and schedules",
					"Attend 341 meeting of creditors",
					"Receive discharge order",
				},
				NextSteps: []string{
					"Inventory debts, income, and assets",
					"Complete pre-filing credit counseling",
					"Consult with bankruptcy attorney",
				},
				Forms: []Link{
					{Name: "Voluntary Petition", URL: "/forms/bankruptcy-petition"},
					{Name: "Means Test Calculation", URL: "/forms/means-test"},
				},
				Resources: []Link{
					{Name: "Credit Counseling Agencies", URL: "/directory/credit-counseling"},
					{Name: "Bankruptcy Exemptions Guide", URL: "/guides/exemptions"},
				},
				Cost:           CostRange{MinUSD: 300, MaxUSD: 2500},
				Timeline:       TimelineRange{MinDays: 90, MaxDays: 180},
				AcceptanceRate: 0.74,
				Complexity:     ComplexityMedium,
			},
		},
	}
}

func defaultGlossary() map[Domain][]GlossaryTerm {
	return map[Domain][]GlossaryTerm{
		DomainFamily: {
			{
				Term:              "custody",
				Definition:        "Legal responsibility for the care and control of a child, including physical custody (where the child lives) and legal custody (decision-making authority).",
				Domain:            DomainFamily,
				Complexity:        "basic",
				RelatedTerms:      []string{"visitation", "parental rights", "best interest"},
				Synonyms:          []string{"child custody", "parental custody"},
				CommonUsage:       "Who gets to keep the children and make decisions about their lives.",
				ProfessionalUsage: "Legal and physical custody arrangements as determined by court order or agreement.",
			},
			{
				Term:              "alimony",
				Definition:        "Financial support paid by one spouse to another after separation or divorce, also known as spousal support or maintenance.",
				Domain:            DomainFamily,
				Complexity:        "basic",
				RelatedTerms:      []string{"divorce", "spousal support", "maintenance"},
				Synonyms:          []string{"spousal support", "maintenance"},
				CommonUsage:       "Money one ex-spouse pays to the other after divorce.",
				ProfessionalUsage: "Court-ordered financial support based on factors including marriage duration, earning capacity, and standard of living.",
			},
			{
				Term:              "best interest of the child",
				Definition:        "Legal standard used by courts to determine custody and visitation arrangements, focusing on what arrangement will best serve the child's physical, emotional, and developmental needs.",
				Domain:            DomainFamily,
				Complexity:        "intermediate",
				RelatedTerms:      []string{"custody", "parenting plan", "child welfare"},
				Synonyms:          []string{"child's best interest", "best interest standard"},
				CommonUsage:       "What's best for the child in custody decisions.",
				ProfessionalUsage: "Multi-factor legal test examining child's physical, emotional, educational, and social needs.",
			},
		},
		DomainCriminal: {
			{
				Term:              "arraignment",
				Definition:        "Initial court appearance where the defendant is formally charged and enters a plea of guilty, not guilty, or no contest.",
				Domain:            DomainCriminal,
				Complexity:        "basic",
				RelatedTerms:      []string{"plea", "charges", "bail"},
				Synonyms:          []string{"initial appearance", "first appearance"},
				CommonUsage:       "First court appearance where you're told what you're charged with.",
				ProfessionalUsage: "Formal reading of charges and entry of plea, with determination of bail and future court dates.",
			},
			{
				Term:              "probable cause",
				Definition:        "Reasonable belief that a crime has been committed and that a specific person committed it, required for arrests and search warrants.",
				Domain:            DomainCriminal,
				Complexity:        "intermediate",
				RelatedTerms:      []string{"search warrant", "arrest", "evidence"},
				Synonyms:          []string{"reasonable belief"},
				CommonUsage:       "Good reason to believe someone committed a crime.",
				ProfessionalUsage: "Constitutional standard requiring more than mere suspicion but less than proof beyond reasonable doubt.",
			},
			{
				Term:              "plea bargain",
				Definition:        "Agreement between prosecutor and defendant where defendant pleads guilty to a lesser charge or receives a reduced sentence in exchange for cooperation or avoiding trial.",
				Domain:            DomainCriminal,
				Complexity:        "basic",
				RelatedTerms:      []string{"plea", "sentencing", "prosecution"},
				Synonyms:          []string{"plea agreement", "plea deal"},
				CommonUsage:       "Deal where you plead guilty to a lesser charge to avoid worse punishment.",
				ProfessionalUsage: "Negotiated resolution involving guilty plea in exchange for prosecutorial concessions.",
			},
		},
		DomainCorporate: {
			{
				Term:              "LLC",
				Definition:        "Limited Liability Company - a business structure that combines elements of corporations and partnerships, providing limited liability protection with a flexible management structure.",
				Domain:            DomainCorporate,
				Complexity:        "basic",
				RelatedTerms:      []string{"corporation", "partnership", "limited liability"},
				Synonyms:          []string{"Limited Liability Company"},
				CommonUsage:       "Business structure that protects your personal assets from business problems.",
				ProfessionalUsage: "Hybrid entity providing corporate liability protection with partnership tax treatment and operational flexibility.",
			},
			{
				Term:              "fiduciary duty",
				Definition:        "Legal obligation to act in the best interest of another party, requiring loyalty, care, and good faith in business relationships.",
				Domain:            DomainCorporate,
				Complexity:        "advanced",
				RelatedTerms:      []string{"board of directors", "corporate governance", "breach of duty"},
				Synonyms:          []string{"fiduciary obligation", "duty of loyalty"},
				CommonUsage:       "Legal duty to put someone else's interests first.",
				ProfessionalUsage: "Highest standard of care requiring undivided loyalty and exercise of reasonable care in decision-making.",
			},
		},
		DomainProperty: {
			{
				Term:              "deed",
				Definition:        "Legal document that transfers ownership of real property from one party to another, containing a description of the property and signatures of the parties.",
				Domain:            DomainProperty,
				Complexity:        "basic",
				RelatedTerms:      []string{"title", "property transfer", "real estate"},
				Synonyms:          []string{"property deed", "title deed"},
				CommonUsage:       "Document that proves you own property.",
				ProfessionalUsage: "Formal instrument of conveyance transferring legal title with specific warranties and covenants.",
			},
			{
				Term:              "easement",
				Definition:        "Legal right to use another person's property for a specific purpose, such as access or utilities, without owning the property.",
				Domain:            DomainProperty,
				Complexity:        "intermediate",
				RelatedTerms:      []string{"property rights", "access", "utilities"},
				Synonyms:          []string{"right of way"},
				CommonUsage:       "Right to use someone else's property for a specific purpose.",
				ProfessionalUsage: "Non-possessory interest in land granting specific use rights while ownership remains with another party.",
			},
		},
		DomainEmployment: {
			{
				Term:              "at-will employment",
				Definition:        "Employment relationship where either employer or employee can terminate the relationship at any time, for any reason, or no reason, without advance notice.",
				Domain:            DomainEmployment,
				Complexity:        "basic",
				RelatedTerms:      []string{"wrongful termination", "employment contract", "termination"},
				Synonyms:          []string{"employment at will"},
				CommonUsage:       "Either you or your employer can end the job at any time for any reason.",
				ProfessionalUsage: "Default employment relationship absent contractual or statutory limitations on termination.",
			},
			{
				Term:              "hostile work environment",
				Definition:        "Form of workplace harassment where discriminatory conduct creates an intimidating, hostile, or offensive work environment that interferes with work performance.",
				Domain:            DomainEmployment,
				Complexity:        "intermediate",
				RelatedTerms:      []string{"harassment", "discrimination", "workplace"},
				Synonyms:          []string{"workplace harassment"},
				CommonUsage:       "Workplace where harassment makes it difficult or unpleasant to do your job.",
				ProfessionalUsage: "Actionable harassment claim requiring severe or pervasive conduct affecting terms and conditions of employment.",
			},
		},
		DomainImmigration: {
			{
				Term:              "adjustment of status",
				Definition:        "Process that allows an eligible person already in the United States to apply for lawful permanent residence without returning home for visa processing.",
				Domain:            DomainImmigration,
				Complexity:        "intermediate",
				RelatedTerms:      []string{"green card", "visa", "consular processing"},
				Synonyms:          []string{"AOS"},
				CommonUsage:       "Applying for a green card while staying in the country.",
				ProfessionalUsage: "INA section 245 procedure for acquiring permanent resident status from within the United States.",
			},
		},
		DomainIntellectualProp: {
			{
				Term:              "trademark",
				Definition:        "Word, phrase, symbol, or design that identifies and distinguishes the source of goods or services of one party from those of others.",
				Domain:            DomainIntellectualProp,
				Complexity:        "basic",
				RelatedTerms:      []string{"copyright", "patent", "infringement"},
				Synonyms:          []string{"mark", "service mark"},
				CommonUsage:       "Protected brand name or logo.",
				ProfessionalUsage: "Source identifier protectable through use in commerce and federal registration under the Lanham Act.",
			},
		},
		DomainContract: {
			{
				Term:              "breach of contract",
				Definition:        "Failure to perform any term of a contract without a legitimate legal excuse, giving the other party a right to remedies.",
				Domain:            DomainContract,
				Complexity:        "basic",
				RelatedTerms:      []string{"damages", "consideration", "specific performance"},
				Synonyms:          []string{"contract violation"},
				CommonUsage:       "Not holding up your end of a deal.",
				ProfessionalUsage: "Material or minor nonperformance of contractual obligations giving rise to damages or equitable relief.",
			},
		},
		DomainBankruptcy: {
			{
				Term:              "discharge",
				Definition:        "Court order releasing a debtor from personal liability for specified debts, prohibiting creditors from taking collection action on them.",
				Domain:            DomainBankruptcy,
				Complexity:        "basic",
				RelatedTerms:      []string{"chapter 7", "chapter 13", "creditor"},
				Synonyms:          []string{"bankruptcy discharge"},
				CommonUsage:       "Court wiping out the debts you no longer have to pay.",
				ProfessionalUsage: "Statutory injunction under 11 U.S.C. section 524 barring collection of discharged prepetition debts.",
			},
		},
	}
}
